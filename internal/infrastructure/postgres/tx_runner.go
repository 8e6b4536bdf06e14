package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/marmolia-api/internal/application/tenant"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
)

var _ tenant.ProvisionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunProvision inicia una transacción con los repos de tenant y admin atados a
// la tx y hace Commit o Rollback. Lo usa el aprovisionamiento: un tenant con
// su primer admin se crea entero o no se crea.
func (r *TxRunner) RunProvision(ctx context.Context, fn func(
	tenantRepo repository.TenantRepository,
	adminRepo repository.TenantAdminRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTenantRepository(tx), NewTenantAdminRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
