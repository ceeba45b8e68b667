package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tienda3d/internal/domain"
	"tienda3d/internal/services"
	"tienda3d/internal/validate"
)

type AttributeHandler struct {
	Catalog *services.CatalogService
}

// GET /api/atributos
func (h *AttributeHandler) List(c *fiber.Ctx) error {
	rows, err := h.Catalog.ListAtributos()
	if err != nil {
		return failErr(c, "atributos.list", err)
	}
	return ok(c, rows)
}

// POST /api/atributos
func (h *AttributeHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Nombre string  `json:"nombre"`
		Tipo   *string `json:"tipo"`
		Unidad *string `json:"unidad"`
		Orden  int     `json:"orden"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	a := domain.Atributo{Nombre: req.Nombre, Tipo: req.Tipo, Unidad: req.Unidad, Orden: req.Orden}
	id, err := h.Catalog.CreateAtributo(&a)
	if err != nil {
		return failErr(c, "atributos.create", err)
	}
	return okMsg(c, fiber.StatusCreated, "Atributo creado exitosamente", fiber.Map{"id": id})
}

// PUT /api/atributos/:id
func (h *AttributeHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	var u domain.AtributoUpdate
	if err := c.BodyParser(&u); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.Catalog.UpdateAtributo(id, u); err != nil {
		return failErr(c, "atributos.update", err)
	}
	return okMsg(c, fiber.StatusOK, "Atributo actualizado exitosamente", nil)
}

// DELETE /api/atributos/:id
func (h *AttributeHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.Catalog.DeleteAtributo(id); err != nil {
		return failErr(c, "atributos.delete", err)
	}
	return okMsg(c, fiber.StatusOK, "Atributo eliminado exitosamente", nil)
}
