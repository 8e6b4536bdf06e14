package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL. Todas las
// lecturas van acotadas por tenant_id: un id de otro tenant es invisible.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, username, email, phone, pin_hash, credit_balance, created_at, updated_at`

// Create persiste un cliente. Email repetido en el tenant -> ErrEmailAlreadyExists.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, tenant_id, username, email, phone, pin_hash, credit_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.Username, c.Email, c.Phone, c.PINHash,
		c.CreditBalance, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente dentro de un tenant. nil, nil si no existe (o si
// el id pertenece a otro tenant).
func (r *CustomerRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1 AND id = $2`
	return r.scanOne(ctx, query, tenantID, id)
}

// GetByEmail busca un cliente por email dentro del tenant.
func (r *CustomerRepo) GetByEmail(ctx context.Context, tenantID, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1 AND email = $2`
	return r.scanOne(ctx, query, tenantID, email)
}

// ListByTenant devuelve los clientes de un tenant con paginación.
func (r *CustomerRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Username, &c.Email, &c.Phone,
			&c.PINHash, &c.CreditBalance, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza el perfil de un cliente. El saldo de créditos NO se toca
// aquí: solo CreditRepo lo muta, con UPDATE condicional.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET username = $3, email = $4, phone = $5, pin_hash = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`
	if _, err := r.q.Exec(ctx, query,
		c.TenantID, c.ID, c.Username, c.Email, c.Phone, c.PINHash, c.UpdatedAt); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.TenantID, &c.Username, &c.Email, &c.Phone,
		&c.PINHash, &c.CreditBalance, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}
