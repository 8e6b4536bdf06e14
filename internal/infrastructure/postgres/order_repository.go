package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// stone_id es NULL cuando el pedido es de descripción libre; hacia el dominio
// viaja como cadena vacía.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, tenant_id, customer_id, COALESCE(stone_id::text, ''), description,
	timeline, budget, status, final_quote_price, created_at, updated_at`

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, tenant_id, customer_id, stone_id, description, timeline,
			budget, status, final_quote_price, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.TenantID, o.CustomerID, o.StoneID, o.Description, o.Timeline,
		o.Budget, o.Status, o.FinalQuotePrice, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido dentro de un tenant. nil, nil si no existe (o si
// el id pertenece a otro tenant).
func (r *OrderRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = $1 AND id = $2`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&o.ID, &o.TenantID, &o.CustomerID, &o.StoneID, &o.Description,
		&o.Timeline, &o.Budget, &o.Status, &o.FinalQuotePrice, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// ListByCustomer devuelve los pedidos de un cliente, el más reciente primero.
func (r *OrderRepo) ListByCustomer(ctx context.Context, tenantID, customerID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.TenantID, &o.CustomerID, &o.StoneID, &o.Description,
			&o.Timeline, &o.Budget, &o.Status, &o.FinalQuotePrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// SummariesByTenant devuelve los pedidos del tenant con el nombre del cliente
// y la piedra ya resueltos en un único JOIN (el panel de admin nunca hace una
// consulta por fila).
func (r *OrderRepo) SummariesByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*repository.OrderSummary, error) {
	query := `
		SELECT o.id, o.tenant_id, o.customer_id, COALESCE(o.stone_id::text, ''), o.description,
			o.timeline, o.budget, o.status, o.final_quote_price, o.created_at, o.updated_at,
			c.username, c.email,
			COALESCE(s.brand, ''), COALESCE(s.names, '{}'::jsonb)
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN stones s ON s.id = o.stone_id
		WHERE o.tenant_id = $1
		ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list order summaries: %w", err)
	}
	defer rows.Close()

	var list []*repository.OrderSummary
	for rows.Next() {
		var row repository.OrderSummary
		o := &row.Order
		if err := rows.Scan(&o.ID, &o.TenantID, &o.CustomerID, &o.StoneID, &o.Description,
			&o.Timeline, &o.Budget, &o.Status, &o.FinalQuotePrice, &o.CreatedAt, &o.UpdatedAt,
			&row.CustomerName, &row.CustomerEmail,
			&row.StoneBrand, &row.StoneNames); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Update persiste un cambio de estado y/o precio final. Tenant y cliente del
// pedido son inmutables: no aparecen en el SET.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET status = $3, final_quote_price = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2`
	if _, err := r.q.Exec(ctx, query, o.TenantID, o.ID, o.Status, o.FinalQuotePrice, o.UpdatedAt); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// CountByStatus agrupa los pedidos del tenant por estado en una sola consulta
// (tarjetas del dashboard).
func (r *OrderRepo) CountByStatus(ctx context.Context, tenantID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM orders WHERE tenant_id = $1 GROUP BY status`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
