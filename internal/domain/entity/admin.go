package entity

import "time"

// Roles administrativos. Conjunto cerrado: no hay roles configurables.
const (
	RoleTenantAdmin = "tenant_admin"
	RoleSuperAdmin  = "super_admin"
)

// TenantAdmin administrador de un tenant (email + password, rol tenant_admin).
// TenantID siempre apunta a un tenant existente, activo o no.
type TenantAdmin struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlatformAdmin administrador global de la plataforma (rol super_admin).
// No tiene referencia a tenant: opera sobre todos.
type PlatformAdmin struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
