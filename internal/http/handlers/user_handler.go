package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tienda3d/internal/log"
	"tienda3d/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

func tokenEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}

// GET /api/usuario/validar?email= — public allow-list check, used by the
// frontend before starting the login flow. An unlisted email answers 403
// with autorizado=false, not an error.
func (h *UserHandler) Validar(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return fail(c, fiber.StatusBadRequest, "email es requerido")
	}
	autorizado, err := h.Users.Autorizado(email)
	if err != nil {
		return failErr(c, "usuario.validar", err)
	}
	if !autorizado {
		applog.Security(c, "usuario.validar.denegado", map[string]any{"email": email})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "autorizado": false})
	}
	return c.JSON(fiber.Map{"success": true, "autorizado": true})
}

// GET /api/usuario/profile — first login creates the row with the default role.
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	u, err := h.Users.Profile(tokenEmail(c))
	if err != nil {
		return failErr(c, "usuario.perfil", err)
	}
	return ok(c, u)
}

// GET /api/usuario/list — admin and webmaster only.
func (h *UserHandler) List(c *fiber.Ctx) error {
	rows, err := h.Users.List()
	if err != nil {
		return failErr(c, "usuario.lista", err)
	}
	return ok(c, rows)
}

// PUT /api/usuario/update-role — webmaster only; target picked by id or
// email, role from a fixed set.
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	var req struct {
		ID    *int64  `json:"id"`
		Email *string `json:"email"`
		Rol   string  `json:"rol"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if err := h.Users.UpdateRole(req.ID, req.Email, req.Rol); err != nil {
		return failErr(c, "usuario.rol", err)
	}
	applog.Audit(c, "usuario.rol", map[string]any{"id": req.ID, "email": req.Email, "rol": req.Rol})
	return okMsg(c, fiber.StatusOK, "Rol actualizado exitosamente", nil)
}

// PUT /api/usuario/last-login — stamps ultimo_login for the token email.
func (h *UserHandler) LastLogin(c *fiber.Ctx) error {
	if err := h.Users.LastLogin(tokenEmail(c)); err != nil {
		return failErr(c, "usuario.ultimologin", err)
	}
	return okMsg(c, fiber.StatusOK, "Último login registrado", nil)
}

// GET /api/privado — smoke route for token verification.
func (h *UserHandler) Privado(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"email": tokenEmail(c), "mensaje": "acceso autorizado"})
}
