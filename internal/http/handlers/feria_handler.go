package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tienda3d/internal/domain"
	applog "tienda3d/internal/log"
	"tienda3d/internal/services"
	"tienda3d/internal/validate"
)

type FeriaHandler struct {
	Ferias *services.FeriaService
}

// GET /api/ferias
func (h *FeriaHandler) List(c *fiber.Ctx) error {
	rows, err := h.Ferias.List()
	if err != nil {
		return failErr(c, "ferias.list", err)
	}
	return ok(c, rows)
}

// GET /api/ferias/:id
func (h *FeriaHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	f, err := h.Ferias.Get(id)
	if err != nil {
		return failErr(c, "ferias.get", err)
	}
	return ok(c, f)
}

// POST /api/ferias
func (h *FeriaHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Nombre        string   `json:"nombre"`
		FechaDesde    *string  `json:"fechaDesde"`
		FechaHasta    *string  `json:"fechaHasta"`
		Direccion     *string  `json:"direccion"`
		Organizadores *string  `json:"organizadores"`
		Contacto      *string  `json:"contacto"`
		Valor         *float64 `json:"valor"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	f := domain.Feria{
		Nombre:        req.Nombre,
		FechaDesde:    req.FechaDesde,
		FechaHasta:    req.FechaHasta,
		Direccion:     req.Direccion,
		Organizadores: req.Organizadores,
		Contacto:      req.Contacto,
		Valor:         req.Valor,
	}
	id, err := h.Ferias.Create(&f)
	if err != nil {
		return failErr(c, "ferias.create", err)
	}
	applog.Audit(c, "ferias.create", map[string]any{"id": id})
	return okMsg(c, fiber.StatusCreated, "Feria creada exitosamente", fiber.Map{"id": id})
}

// PUT /api/ferias/:id
func (h *FeriaHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	var u domain.FeriaUpdate
	if err := c.BodyParser(&u); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.Ferias.Update(id, u); err != nil {
		return failErr(c, "ferias.update", err)
	}
	return okMsg(c, fiber.StatusOK, "Feria actualizada exitosamente", nil)
}

// DELETE /api/ferias/:id
func (h *FeriaHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.Ferias.Delete(id); err != nil {
		return failErr(c, "ferias.delete", err)
	}
	applog.Audit(c, "ferias.delete", map[string]any{"id": id})
	return okMsg(c, fiber.StatusOK, "Feria eliminada exitosamente", nil)
}

// GET /api/ferias/:id/productos — allocation, summed sales and remaining
// stock per product.
func (h *FeriaHandler) Stock(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	rows, err := h.Ferias.Stock(id)
	if err != nil {
		return failErr(c, "ferias.stock", err)
	}
	return ok(c, rows)
}

// POST /api/ferias/:id/inventario — replaces the allocation list wholesale.
func (h *FeriaHandler) SaveInventory(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	var req struct {
		Productos []domain.FeriaProducto `json:"productos"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.Ferias.SaveInventory(id, req.Productos); err != nil {
		return failErr(c, "ferias.inventario", err)
	}
	applog.Audit(c, "ferias.inventario", map[string]any{"feria_id": id, "lineas": len(req.Productos)})
	return okMsg(c, fiber.StatusOK, "Inventario guardado exitosamente", nil)
}

// POST /api/ferias/:id/ventas — appends the batch, all-or-nothing.
func (h *FeriaHandler) RecordSales(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	var req struct {
		Ventas []domain.Venta `json:"ventas"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.Ferias.RecordSales(id, req.Ventas); err != nil {
		return failErr(c, "ferias.ventas", err)
	}
	applog.Audit(c, "ferias.ventas", map[string]any{"feria_id": id, "lineas": len(req.Ventas)})
	return okMsg(c, fiber.StatusOK, "Ventas registradas exitosamente", nil)
}

// POST /api/post/inventario_feria — legacy body carries feria_id inline.
func (h *FeriaHandler) SaveInventoryLegacy(c *fiber.Ctx) error {
	var req struct {
		FeriaID   int64                  `json:"feria_id"`
		Productos []domain.FeriaProducto `json:"productos"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.Ferias.SaveInventory(req.FeriaID, req.Productos); err != nil {
		return failErr(c, "ferias.inventario", err)
	}
	applog.Audit(c, "ferias.inventario", map[string]any{"feria_id": req.FeriaID, "lineas": len(req.Productos)})
	return okMsg(c, fiber.StatusOK, "Inventario guardado exitosamente", nil)
}

// POST /api/post/ventas_feria — legacy body carries feria_id inline.
func (h *FeriaHandler) RecordSalesLegacy(c *fiber.Ctx) error {
	var req struct {
		FeriaID int64          `json:"feria_id"`
		Ventas  []domain.Venta `json:"ventas"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.Ferias.RecordSales(req.FeriaID, req.Ventas); err != nil {
		return failErr(c, "ferias.ventas", err)
	}
	applog.Audit(c, "ferias.ventas", map[string]any{"feria_id": req.FeriaID, "lineas": len(req.Ventas)})
	return okMsg(c, fiber.StatusOK, "Ventas registradas exitosamente", nil)
}
