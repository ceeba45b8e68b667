package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tienda3d/internal/domain"
	applog "tienda3d/internal/log"
	"tienda3d/internal/services"
	"tienda3d/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categorias
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	rows, err := h.Catalog.ListCategorias()
	if err != nil {
		return failErr(c, "categorias.list", err)
	}
	return ok(c, rows)
}

// POST /api/categorias
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Nombre      string  `json:"nombre"`
		Descripcion *string `json:"descripcion"`
		Imagen      *string `json:"imagen"`
		PadreID     *int64  `json:"padre_id"`
		Orden       int     `json:"orden"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}

	cat := domain.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Imagen:      req.Imagen,
		PadreID:     req.PadreID,
		Orden:       req.Orden,
	}
	id, slug, err := h.Catalog.CreateCategoria(&cat)
	if err != nil {
		return failErr(c, "categorias.create", err)
	}
	applog.Audit(c, "categorias.create", map[string]any{"id": id})
	return okMsg(c, fiber.StatusCreated, "Categoría creada exitosamente", fiber.Map{"id": id, "slug": slug})
}

// PUT /api/categorias/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	var u domain.CategoriaUpdate
	if err := c.BodyParser(&u); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.Catalog.UpdateCategoria(id, u); err != nil {
		return failErr(c, "categorias.update", err)
	}
	return okMsg(c, fiber.StatusOK, "Categoría actualizada exitosamente", nil)
}

// DELETE /api/categorias/:id — refuses while active products reference it.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.Catalog.DeleteCategoria(id); err != nil {
		return failErr(c, "categorias.delete", err)
	}
	applog.Audit(c, "categorias.delete", map[string]any{"id": id})
	return okMsg(c, fiber.StatusOK, "Categoría eliminada exitosamente", nil)
}
