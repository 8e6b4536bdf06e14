package http

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/tenant"
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

// Locals keys en Fiber.
const (
	LocalTenant    = "tenant"
	LocalPrincipal = "principal"
)

// TenantMiddleware resuelve el tenant de CADA petición a partir del dominio de
// origen (header Origin si existe, si no Host) y lo deja en c.Locals. Dominio
// desconocido responde 404: ninguna ruta de negocio corre sin tenant.
//
// Un tenant desactivado sí pasa; el header x-tenant-active lo delata para que
// el frontend muestre la página de suspensión.
func TenantMiddleware(resolver *tenant.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := originDomain(c)
		t, err := resolver.Resolve(c.Context(), origin)
		if err != nil {
			if errors.Is(err, domain.ErrTenantNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Code:    "TENANT_NOT_FOUND",
					Message: "ningún negocio atiende el dominio '" + origin + "'",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code:    "INTERNAL",
				Message: "no se pudo resolver el tenant",
			})
		}

		c.Locals(LocalTenant, t)
		c.Set("x-tenant-id", t.ID)
		c.Set("x-tenant-name", t.Name)
		if t.Active {
			c.Set("x-tenant-active", "true")
		} else {
			c.Set("x-tenant-active", "false")
		}
		return c.Next()
	}
}

// originDomain extrae el hostname de la petición: primero el header Origin
// (navegador), si no el Host. Sin puerto.
func originDomain(c *fiber.Ctx) string {
	if origin := c.Get(fiber.HeaderOrigin); origin != "" {
		if u, err := url.Parse(origin); err == nil && u.Hostname() != "" {
			return u.Hostname()
		}
	}
	host := c.Hostname()
	if i := strings.LastIndex(host, ":"); i != -1 {
		host = host[:i]
	}
	return host
}

// GetTenant devuelve el tenant resuelto (después de TenantMiddleware).
func GetTenant(c *fiber.Ctx) *entity.Tenant {
	v := c.Locals(LocalTenant)
	if v == nil {
		return nil
	}
	t, _ := v.(*entity.Tenant)
	return t
}

// RequireFeature verifica que el tenant tenga el feature flag activo. Debe
// usarse DESPUÉS de TenantMiddleware.
func RequireFeature(flag string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t := GetTenant(c)
		if t == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "TENANT_NOT_FOUND",
				Message: "tenant no resuelto",
			})
		}
		if !t.HasFeature(flag) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_DISABLED",
				Message: "la función '" + flag + "' no está habilitada para este negocio",
			})
		}
		return c.Next()
	}
}
