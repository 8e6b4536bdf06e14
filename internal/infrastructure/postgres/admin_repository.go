package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
)

var _ repository.TenantAdminRepository = (*TenantAdminRepo)(nil)
var _ repository.PlatformAdminRepository = (*PlatformAdminRepo)(nil)

// TenantAdminRepo implementación de TenantAdminRepository sobre PostgreSQL (usable con pool o tx).
type TenantAdminRepo struct {
	q Querier
}

// NewTenantAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantAdminRepository(q Querier) *TenantAdminRepo {
	return &TenantAdminRepo{q: q}
}

// Create persiste un admin de tenant. Email repetido en el tenant -> ErrEmailAlreadyExists.
func (r *TenantAdminRepo) Create(ctx context.Context, a *entity.TenantAdmin) error {
	query := `
		INSERT INTO tenant_admins (id, tenant_id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TenantID, a.Email, a.PasswordHash, a.Name, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert tenant admin: %w", err)
	}
	return nil
}

// GetByID obtiene un admin por ID. nil, nil si no existe.
func (r *TenantAdminRepo) GetByID(ctx context.Context, id string) (*entity.TenantAdmin, error) {
	query := `
		SELECT id, tenant_id, email, password_hash, name, created_at, updated_at
		FROM tenant_admins WHERE id = $1`
	var a entity.TenantAdmin
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.TenantID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant admin: %w", err)
	}
	return &a, nil
}

// GetByEmail busca un admin por email dentro del tenant (para login).
func (r *TenantAdminRepo) GetByEmail(ctx context.Context, tenantID, email string) (*entity.TenantAdmin, error) {
	query := `
		SELECT id, tenant_id, email, password_hash, name, created_at, updated_at
		FROM tenant_admins WHERE tenant_id = $1 AND email = $2`
	var a entity.TenantAdmin
	err := r.q.QueryRow(ctx, query, tenantID, email).Scan(
		&a.ID, &a.TenantID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant admin by email: %w", err)
	}
	return &a, nil
}

// ListByTenant devuelve los admins de un tenant, el más antiguo primero (el
// primero recibe las notificaciones de pedidos nuevos).
func (r *TenantAdminRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantAdmin, error) {
	query := `
		SELECT id, tenant_id, email, password_hash, name, created_at, updated_at
		FROM tenant_admins WHERE tenant_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list tenant admins: %w", err)
	}
	defer rows.Close()

	var list []*entity.TenantAdmin
	for rows.Next() {
		var a entity.TenantAdmin
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Email, &a.PasswordHash, &a.Name,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant admin: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// PlatformAdminRepo implementación de PlatformAdminRepository sobre PostgreSQL.
// Los admins de plataforma son globales: sin columna tenant_id.
type PlatformAdminRepo struct {
	q Querier
}

// NewPlatformAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlatformAdminRepository(q Querier) *PlatformAdminRepo {
	return &PlatformAdminRepo{q: q}
}

// Create persiste un admin de plataforma.
func (r *PlatformAdminRepo) Create(ctx context.Context, a *entity.PlatformAdmin) error {
	query := `
		INSERT INTO platform_admins (id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, a.ID, a.Email, a.PasswordHash, a.Name, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert platform admin: %w", err)
	}
	return nil
}

// GetByID obtiene un admin de plataforma por ID. nil, nil si no existe.
func (r *PlatformAdminRepo) GetByID(ctx context.Context, id string) (*entity.PlatformAdmin, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM platform_admins WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByEmail busca un admin de plataforma por email (para login).
func (r *PlatformAdminRepo) GetByEmail(ctx context.Context, email string) (*entity.PlatformAdmin, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM platform_admins WHERE email = $1`
	return r.scanOne(ctx, query, email)
}

func (r *PlatformAdminRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.PlatformAdmin, error) {
	var a entity.PlatformAdmin
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get platform admin: %w", err)
	}
	return &a, nil
}
