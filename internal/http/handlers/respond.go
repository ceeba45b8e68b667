package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "tienda3d/internal/log"
	"tienda3d/internal/repos"
	"tienda3d/internal/services"
)

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okMsg(c *fiber.Ctx, status int, msg string, data any) error {
	m := fiber.Map{"success": true, "message": msg}
	if data != nil {
		m["data"] = data
	}
	return c.Status(status).JSON(m)
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

// failErr maps service errors onto the envelope. Driver errors are logged
// under action and never echoed to the client.
func failErr(c *fiber.Ctx, action string, err error) error {
	var asociados services.ErrProductosAsociados
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fail(c, fiber.StatusNotFound, "no encontrado")
	case errors.As(err, &asociados):
		return fail(c, fiber.StatusBadRequest, asociados.Error())
	case errors.Is(err, errImagenInvalida):
		return fail(c, fiber.StatusBadRequest, "archivo de imagen inválido")
	case errors.Is(err, services.ErrNombreRequerido),
		errors.Is(err, services.ErrEmailRequerido),
		errors.Is(err, services.ErrRolInvalido),
		errors.Is(err, services.ErrDatosIncompletos),
		errors.Is(err, repos.ErrStockInsuficiente):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	applog.Error(c, action, err, nil)
	return fail(c, fiber.StatusInternalServerError, "error interno del servidor")
}
