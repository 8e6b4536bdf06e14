package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
)

var _ repository.StoneRepository = (*StoneRepo)(nil)

// StoneRepo implementación de StoneRepository sobre PostgreSQL. Los nombres
// multi-idioma viven en una columna jsonb.
type StoneRepo struct {
	q Querier
}

// NewStoneRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewStoneRepository(q Querier) *StoneRepo {
	return &StoneRepo{q: q}
}

const stoneColumns = `id, tenant_id, brand, series, type, names, price, active, created_at, updated_at`

// Create persiste una piedra del catálogo.
func (r *StoneRepo) Create(ctx context.Context, s *entity.Stone) error {
	names, err := json.Marshal(s.Names)
	if err != nil {
		return fmt.Errorf("marshal names: %w", err)
	}
	query := `
		INSERT INTO stones (id, tenant_id, brand, series, type, names, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.Brand, s.Series, s.Type, names, s.Price, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stone: %w", err)
	}
	return nil
}

// GetByID obtiene una piedra dentro de un tenant. nil, nil si no existe (o si
// el id pertenece a otro tenant).
func (r *StoneRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Stone, error) {
	query := `SELECT ` + stoneColumns + ` FROM stones WHERE tenant_id = $1 AND id = $2`
	s, err := scanStone(r.q.QueryRow(ctx, query, tenantID, id).Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stone: %w", err)
	}
	return s, nil
}

// ListByTenant devuelve el catálogo de un tenant. Con onlyActive se filtran
// las piedras desactivadas (vista pública).
func (r *StoneRepo) ListByTenant(ctx context.Context, tenantID string, onlyActive bool, limit, offset int) ([]*entity.Stone, error) {
	query := `
		SELECT ` + stoneColumns + `
		FROM stones WHERE tenant_id = $1 AND ($2 = false OR active = true)
		ORDER BY brand ASC, created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stones: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stone
	for rows.Next() {
		s, err := scanStone(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan stone: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update actualiza una piedra existente.
func (r *StoneRepo) Update(ctx context.Context, s *entity.Stone) error {
	names, err := json.Marshal(s.Names)
	if err != nil {
		return fmt.Errorf("marshal names: %w", err)
	}
	query := `
		UPDATE stones SET brand = $3, series = $4, type = $5, names = $6, price = $7, active = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`
	if _, err := r.q.Exec(ctx, query,
		s.TenantID, s.ID, s.Brand, s.Series, s.Type, names, s.Price, s.Active, s.UpdatedAt); err != nil {
		return fmt.Errorf("update stone: %w", err)
	}
	return nil
}

// Deactivate desactivación en blando. Devuelve false si la piedra no existe en
// el tenant.
func (r *StoneRepo) Deactivate(ctx context.Context, tenantID, id string) (bool, error) {
	query := `UPDATE stones SET active = false, updated_at = now() WHERE tenant_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query, tenantID, id)
	if err != nil {
		return false, fmt.Errorf("deactivate stone: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanStone(scan func(...any) error) (*entity.Stone, error) {
	var s entity.Stone
	var names []byte
	if err := scan(&s.ID, &s.TenantID, &s.Brand, &s.Series, &s.Type, &names,
		&s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if len(names) > 0 {
		if err := json.Unmarshal(names, &s.Names); err != nil {
			return nil, fmt.Errorf("unmarshal names: %w", err)
		}
	}
	return &s, nil
}
