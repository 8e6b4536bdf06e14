package repository

import (
	"context"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

// StoneRepository define el puerto de persistencia para el catálogo de piedras.
// Las piedras nunca se borran físicamente: Deactivate marca Active=false para
// preservar los pedidos históricos que las referencian.
type StoneRepository interface {
	Create(ctx context.Context, stone *entity.Stone) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Stone, error)
	ListByTenant(ctx context.Context, tenantID string, onlyActive bool, limit, offset int) ([]*entity.Stone, error)
	Update(ctx context.Context, stone *entity.Stone) error
	Deactivate(ctx context.Context, tenantID, id string) (bool, error)
}
