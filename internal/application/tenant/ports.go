package tenant

import (
	"context"

	"github.com/jhoicas/marmolia-api/internal/domain/repository"
)

// ProvisionTxRunner ejecuta el aprovisionamiento (tenant + primer admin)
// dentro de una sola transacción. La implementación vive en
// infrastructure/postgres.
type ProvisionTxRunner interface {
	RunProvision(ctx context.Context, fn func(
		tenantRepo repository.TenantRepository,
		adminRepo repository.TenantAdminRepository,
	) error) error
}
