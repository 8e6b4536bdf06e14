package repository

import (
	"context"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

// OrderSummary fila desnormalizada para listados de administración: el pedido
// más los nombres de cliente y piedra resueltos en un solo JOIN (nunca una
// consulta por fila).
type OrderSummary struct {
	Order         entity.Order
	CustomerName  string
	CustomerEmail string
	StoneBrand    string
	StoneNames    entity.LocalizedName
}

// OrderRepository define el puerto de persistencia para Order.
// Las lecturas van acotadas por tenant; GetByID con tenant ajeno devuelve nil.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Order, error)
	ListByCustomer(ctx context.Context, tenantID, customerID string, limit, offset int) ([]*entity.Order, error)
	// SummariesByTenant lista pedidos del tenant con cliente y piedra ya unidos.
	SummariesByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*OrderSummary, error)
	Update(ctx context.Context, order *entity.Order) error
	// CountByStatus conteo de pedidos por estado (dashboard).
	CountByStatus(ctx context.Context, tenantID string) (map[string]int, error)
}
