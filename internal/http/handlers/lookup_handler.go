package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tienda3d/internal/repos"
)

type LookupHandler struct {
	Lookups *repos.LookupRepo
}

// GET /api/impresoras
func (h *LookupHandler) Impresoras(c *fiber.Ctx) error {
	rows, err := h.Lookups.Impresoras()
	if err != nil {
		return failErr(c, "impresoras.list", err)
	}
	return ok(c, rows)
}

// GET /api/filamentos
func (h *LookupHandler) Filamentos(c *fiber.Ctx) error {
	rows, err := h.Lookups.Filamentos()
	if err != nil {
		return failErr(c, "filamentos.list", err)
	}
	return ok(c, rows)
}
