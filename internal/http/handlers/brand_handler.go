package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tienda3d/internal/domain"
	applog "tienda3d/internal/log"
	"tienda3d/internal/services"
	"tienda3d/internal/validate"
)

type BrandHandler struct {
	Catalog *services.CatalogService
}

// GET /api/marcas
func (h *BrandHandler) List(c *fiber.Ctx) error {
	rows, err := h.Catalog.ListMarcas()
	if err != nil {
		return failErr(c, "marcas.list", err)
	}
	return ok(c, rows)
}

// POST /api/marcas
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Nombre      string  `json:"nombre"`
		Descripcion *string `json:"descripcion"`
		Logo        *string `json:"logo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	m := domain.Marca{Nombre: req.Nombre, Descripcion: req.Descripcion, Logo: req.Logo}
	id, err := h.Catalog.CreateMarca(&m)
	if err != nil {
		return failErr(c, "marcas.create", err)
	}
	applog.Audit(c, "marcas.create", map[string]any{"id": id})
	return okMsg(c, fiber.StatusCreated, "Marca creada exitosamente", fiber.Map{"id": id})
}

// PUT /api/marcas/:id
func (h *BrandHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	var u domain.MarcaUpdate
	if err := c.BodyParser(&u); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.Catalog.UpdateMarca(id, u); err != nil {
		return failErr(c, "marcas.update", err)
	}
	return okMsg(c, fiber.StatusOK, "Marca actualizada exitosamente", nil)
}

// DELETE /api/marcas/:id
func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.Catalog.DeleteMarca(id); err != nil {
		return failErr(c, "marcas.delete", err)
	}
	applog.Audit(c, "marcas.delete", map[string]any{"id": id})
	return okMsg(c, fiber.StatusOK, "Marca eliminada exitosamente", nil)
}
