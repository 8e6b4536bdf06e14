package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/guard"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// SessionMiddleware valida la credencial de la clase dada y deja el Principal
// en c.Locals. El token se busca primero en la cookie de la clase y después en
// el header Authorization (Bearer), para clientes no-navegador.
//
// Las clases con scope de tenant exigen además que el tenant de la sesión sea
// el tenant resuelto de la petición: una cookie válida de un dominio no entra
// por el dominio de otro negocio.
func SessionMiddleware(sessions *session.Manager, class session.Class) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(class.CookieName())
		if token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_SESSION",
				Message: "sesión requerida",
			})
		}

		claims, err := sessions.Validate(class, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_SESSION",
				Message: "sesión inválida o expirada",
			})
		}

		if class != session.ClassPlatformAdmin {
			t := GetTenant(c)
			if t == nil || claims.TenantID != t.ID {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code:    "INVALID_SESSION",
					Message: "la sesión no pertenece a este negocio",
				})
			}
		}

		c.Locals(LocalPrincipal, guard.FromClaims(claims))
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetPrincipal devuelve el principal autenticado (después de SessionMiddleware).
func GetPrincipal(c *fiber.Ctx) guard.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return guard.Principal{}
	}
	p, _ := v.(guard.Principal)
	return p
}
