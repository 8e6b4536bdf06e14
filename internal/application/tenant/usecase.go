package tenant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/guard"
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// UseCase aprovisionamiento y administración de tenants (solo plataforma).
// Los tenants se desactivan en blando, nunca se borran.
type UseCase struct {
	tenants repository.TenantRepository
	admins  repository.TenantAdminRepository
	tx      ProvisionTxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tenants repository.TenantRepository, admins repository.TenantAdminRepository, tx ProvisionTxRunner) *UseCase {
	return &UseCase{tenants: tenants, admins: admins, tx: tx}
}

// requireSuperAdmin todas las operaciones de este caso de uso son de plataforma.
func requireSuperAdmin(p guard.Principal) error {
	if p.Class != session.ClassPlatformAdmin {
		return domain.ErrForbidden
	}
	return guard.Authorize(p, guard.Resource{})
}

// Provision crea un tenant; dominio duplicado devuelve ErrDuplicate. Si la
// petición trae el primer admin, tenant y admin se crean en una transacción.
func (uc *UseCase) Provision(ctx context.Context, p guard.Principal, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	if in.Name == "" || in.Domain == "" {
		return nil, domain.ErrInvalidInput
	}
	dom := strings.ToLower(strings.TrimSpace(in.Domain))
	existing, err := uc.tenants.GetByDomain(ctx, dom)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	flags := in.FeatureFlags
	if flags == nil {
		flags = map[string]bool{entity.FeatureCatalog: true}
	}
	t := &entity.Tenant{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Domain:       dom,
		Active:       true,
		FeatureFlags: flags,
		AIBudget:     in.AIBudget,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if in.Admin == nil {
		if err := uc.tenants.Create(ctx, t); err != nil {
			return nil, err
		}
		return toTenantResponse(t), nil
	}

	admin, err := buildAdmin(t.ID, *in.Admin, now)
	if err != nil {
		return nil, err
	}
	err = uc.tx.RunProvision(ctx, func(tenantRepo repository.TenantRepository, adminRepo repository.TenantAdminRepository) error {
		if err := tenantRepo.Create(ctx, t); err != nil {
			return err
		}
		return adminRepo.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// CreateAdmin agrega un admin a un tenant existente.
func (uc *UseCase) CreateAdmin(ctx context.Context, p guard.Principal, tenantID string, in dto.CreateTenantAdminRequest) (*dto.AdminResponse, error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	t, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.admins.GetByEmail(ctx, tenantID, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	admin, err := buildAdmin(tenantID, in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return &dto.AdminResponse{
		ID:       admin.ID,
		TenantID: admin.TenantID,
		Email:    admin.Email,
		Name:     admin.Name,
		Role:     entity.RoleTenantAdmin,
	}, nil
}

// Get devuelve un tenant por id.
func (uc *UseCase) Get(ctx context.Context, p guard.Principal, id string) (*dto.TenantResponse, error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	t, err := uc.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(t), nil
}

// List lista tenants con paginación.
func (uc *UseCase) List(ctx context.Context, p guard.Principal, limit, offset int) ([]*dto.TenantResponse, error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.tenants.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TenantResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTenantResponse(t))
	}
	return out, nil
}

// Deactivate desactivación en blando: Active=false, el registro se conserva.
// Idempotente sobre un tenant ya inactivo.
func (uc *UseCase) Deactivate(ctx context.Context, p guard.Principal, id string) (*dto.TenantResponse, error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	t, err := uc.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	t.Active = false
	t.UpdatedAt = time.Now()
	if err := uc.tenants.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

func buildAdmin(tenantID string, in dto.CreateTenantAdminRequest, now time.Time) (*entity.TenantAdmin, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	return &entity.TenantAdmin{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:           t.ID,
		Name:         t.Name,
		Domain:       t.Domain,
		Active:       t.Active,
		FeatureFlags: t.FeatureFlags,
		AIBudget:     t.AIBudget.StringFixed(2),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
