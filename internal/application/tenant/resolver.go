package tenant

import (
	"context"
	"strings"

	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
)

// Resolver mapea el dominio de origen de una petición al tenant que atiende.
// No tiene más dependencias que el repositorio.
type Resolver struct {
	repo repository.TenantRepository
}

// NewResolver construye el resolver.
func NewResolver(repo repository.TenantRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve busca el tenant por dominio exacto (case-insensitive). El dominio
// bootstrap ("localhost") resuelve al primer tenant activo para desarrollo.
//
// Un tenant desactivado SÍ resuelve: el caller decide si sirve una página de
// suspensión en lugar de un 404 consultando Active.
func (r *Resolver) Resolve(ctx context.Context, originDomain string) (*entity.Tenant, error) {
	originDomain = strings.ToLower(strings.TrimSpace(originDomain))
	if originDomain == "" {
		return nil, domain.ErrTenantNotFound
	}
	if originDomain == entity.BootstrapDomain {
		t, err := r.repo.FirstActive(ctx)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, domain.ErrTenantNotFound
		}
		return t, nil
	}
	t, err := r.repo.GetByDomain(ctx, originDomain)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	return t, nil
}
