package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	applog "tienda3d/internal/log"
	"tienda3d/internal/services"
)

// TokenVerifier checks bearer tokens against the configured secret, issuer
// and audience. Provider key retrieval lives outside this process; the
// shared secret is handed in through configuration.
type TokenVerifier struct {
	Secret   string
	Issuer   string
	Audience string
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (v *TokenVerifier) parse(tokenStr string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(v.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token inválido")
	}
	if v.Issuer != "" && !claims.VerifyIssuer(v.Issuer, true) {
		return nil, errors.New("issuer no coincide")
	}
	if v.Audience != "" && !claims.VerifyAudience(v.Audience, true) {
		return nil, errors.New("audience no coincide")
	}
	return claims, nil
}

// RequireToken rejects the request before any database work when the bearer
// token is missing or invalid. The verified email lands in c.Locals.
func RequireToken(v *TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			applog.Security(c, "auth.token.missing", nil)
			return fail(c, fiber.StatusUnauthorized, "token requerido")
		}
		claims, err := v.parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"reason": err.Error()})
			return fail(c, fiber.StatusUnauthorized, "token inválido")
		}
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

// RequireRole additionally demands one of the given roles on the user row
// behind the token email. Run after RequireToken.
func RequireRole(users *services.UserService, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals("email").(string)
		u, err := users.Profile(email)
		if err != nil {
			return failErr(c, "auth.role.lookup", err)
		}
		for _, r := range roles {
			if u.Rol == r {
				return c.Next()
			}
		}
		applog.Security(c, "auth.role.denied", map[string]any{"email": email, "rol": u.Rol})
		return fail(c, fiber.StatusForbidden, "acceso denegado")
	}
}
