// Package guard implementa la regla de autorización que se aplica a todo
// acceso a recursos con scope de tenant:
//
//	resource.tenant == session.tenant, y para recursos personales de un
//	cliente, además resource.owner == session.principal.
//
// Admin de tenant salta el chequeo de dueño pero no el de tenant; super_admin
// salta el de tenant pero debe acreditar el rol. Un recurso que existe pero
// falla tenant/dueño se reporta igual que uno inexistente (ErrNotFound) para
// no permitir sondear la existencia de recursos de otros tenants.
package guard

import (
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// Principal sesión ya validada criptográficamente por pkg/session.
type Principal struct {
	Class       session.Class
	PrincipalID string
	Role        string
	TenantID    string // vacío solo para admin de plataforma
}

// Resource recurso objetivo del acceso. OwnerID vacío = recurso no personal
// (p. ej. una piedra del catálogo): solo aplica el chequeo de tenant.
type Resource struct {
	TenantID string
	OwnerID  string
}

// Authorize decide el acceso del principal al recurso.
//
// Devuelve nil si el acceso procede; domain.ErrNotFound si falla el match de
// tenant o de dueño (indistinguible de la ausencia real); domain.ErrForbidden
// si falla solo la verificación de rol.
func Authorize(p Principal, r Resource) error {
	if p.Class == session.ClassPlatformAdmin {
		// Tenant-agnóstico, pero el rol se verifica siempre.
		if p.Role != session.RoleSuperAdmin {
			return domain.ErrForbidden
		}
		return nil
	}
	if p.TenantID == "" || p.TenantID != r.TenantID {
		return domain.ErrNotFound
	}
	if p.Class == session.ClassTenantAdmin {
		if p.Role != session.RoleTenantAdmin {
			return domain.ErrForbidden
		}
		return nil
	}
	// Cliente: los recursos personales exigen además ser el dueño.
	if r.OwnerID != "" && r.OwnerID != p.PrincipalID {
		return domain.ErrNotFound
	}
	return nil
}

// FromClaims construye el Principal desde los claims de una sesión validada.
func FromClaims(c *session.Claims) Principal {
	return Principal{
		Class:       c.Class,
		PrincipalID: c.PrincipalID,
		Role:        c.Role,
		TenantID:    c.TenantID,
	}
}
