package repository

import (
	"context"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Todas las lecturas van acotadas por tenant: un id de otro tenant se comporta
// como inexistente.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*entity.Customer, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
}
