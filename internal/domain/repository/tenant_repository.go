package repository

import (
	"context"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// La implementación vive en infrastructure.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*entity.Tenant, error)
	// FirstActive devuelve el primer tenant activo (dominio bootstrap en desarrollo).
	FirstActive(ctx context.Context) (*entity.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
}
