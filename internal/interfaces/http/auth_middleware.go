package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/b2b-portal-api/internal/application/auth"
	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/rbac"
	"github.com/jhoicas/b2b-portal-api/pkg/logger"
)

// LocalPrincipal clave de c.Locals con el *auth.Principal de la petición.
const LocalPrincipal = "principal"

// AuthMiddleware valida el Bearer Token, resuelve el usuario en cada petición y
// deja el principal en c.Locals. Sin token válido la petición no continúa.
func AuthMiddleware(authn *auth.Authenticator, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := authn.Authenticate(c.UserContext(), bearerToken(c.Get(fiber.HeaderAuthorization)))
		if err != nil {
			if kind := domain.AuthErrorKindOf(err); kind != "" {
				log.Warn().Str("kind", string(kind)).Str("method", c.Method()).Str("path", c.Path()).Msg("petición no autenticada")
			}
			return err
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// RequirePermission exige que el rol del principal pueda ejecutar la acción.
// Debe ir después de AuthMiddleware.
func RequirePermission(action rbac.Action, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if err := auth.Authorize(p, action); err != nil {
			ev := log.Warn().Str("kind", string(domain.AuthErrorKindOf(err))).Str("action", string(action)).Str("path", c.Path())
			if p != nil {
				ev = ev.Str("role", p.Role.String())
			}
			ev.Msg("permiso denegado")
			return err
		}
		return c.Next()
	}
}

// bearerToken extrae el token de "Bearer <token>"; "" si falta o el esquema no es Bearer.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetPrincipal devuelve el principal del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) *auth.Principal {
	p, _ := c.Locals(LocalPrincipal).(*auth.Principal)
	return p
}

// GetUser devuelve el usuario autenticado.
func GetUser(c *fiber.Ctx) *entity.User {
	if p := GetPrincipal(c); p != nil {
		return p.User
	}
	return nil
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) entity.Role {
	if p := GetPrincipal(c); p != nil {
		return p.Role
	}
	return ""
}

// GetCompanyID devuelve el tenant del usuario autenticado.
func GetCompanyID(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil {
		return p.TenantID
	}
	return ""
}
