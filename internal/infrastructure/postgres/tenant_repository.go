package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación de TenantRepository sobre PostgreSQL (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador de tenants. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

const tenantColumns = `id, name, domain, active, feature_flags, ai_budget, created_at, updated_at`

// Create persiste un tenant nuevo. Dominio repetido -> ErrDuplicate (índice único).
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	flags, err := json.Marshal(t.FeatureFlags)
	if err != nil {
		return fmt.Errorf("marshal feature_flags: %w", err)
	}
	query := `
		INSERT INTO tenants (id, name, domain, active, feature_flags, ai_budget, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		t.ID, t.Name, t.Domain, t.Active, flags, t.AIBudget, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID. Devuelve nil, nil si no existe.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByDomain obtiene un tenant por su dominio de origen (ya normalizado).
func (r *TenantRepo) GetByDomain(ctx context.Context, dom string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE domain = $1`
	return r.scanOne(ctx, query, dom)
}

// FirstActive devuelve el tenant activo más antiguo (bootstrap de localhost).
func (r *TenantRepo) FirstActive(ctx context.Context) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE active = true ORDER BY created_at ASC LIMIT 1`
	return r.scanOne(ctx, query)
}

// List devuelve tenants con paginación.
func (r *TenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza un tenant existente (nombre, activación y flags; el dominio
// y las fechas de creación no cambian).
func (r *TenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	flags, err := json.Marshal(t.FeatureFlags)
	if err != nil {
		return fmt.Errorf("marshal feature_flags: %w", err)
	}
	query := `
		UPDATE tenants SET name = $2, active = $3, feature_flags = $4, ai_budget = $5, updated_at = $6
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Active, flags, t.AIBudget, t.UpdatedAt); err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

func (r *TenantRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Tenant, error) {
	row := r.q.QueryRow(ctx, query, args...)
	t, err := scanTenant(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

func scanTenant(scan func(...any) error) (*entity.Tenant, error) {
	var t entity.Tenant
	var flags []byte
	if err := scan(&t.ID, &t.Name, &t.Domain, &t.Active, &flags, &t.AIBudget, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if len(flags) > 0 {
		if err := json.Unmarshal(flags, &t.FeatureFlags); err != nil {
			return nil, fmt.Errorf("unmarshal feature_flags: %w", err)
		}
	}
	return &t, nil
}
