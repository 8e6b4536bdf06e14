package repository

import (
	"context"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

// TenantAdminRepository define el puerto de persistencia para TenantAdmin.
type TenantAdminRepository interface {
	Create(ctx context.Context, admin *entity.TenantAdmin) error
	GetByID(ctx context.Context, id string) (*entity.TenantAdmin, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*entity.TenantAdmin, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantAdmin, error)
}

// PlatformAdminRepository define el puerto de persistencia para PlatformAdmin
// (principal global, sin tenant).
type PlatformAdminRepository interface {
	Create(ctx context.Context, admin *entity.PlatformAdmin) error
	GetByID(ctx context.Context, id string) (*entity.PlatformAdmin, error)
	GetByEmail(ctx context.Context, email string) (*entity.PlatformAdmin, error)
}
