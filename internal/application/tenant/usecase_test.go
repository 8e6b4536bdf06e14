package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/guard"
	"github.com/jhoicas/marmolia-api/internal/application/tenant"
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartidos del paquete (también los usa resolver_test.go)
// ──────────────────────────────────────────────────────────────────────────────

// fakeTenantRepo mantiene orden de inserción para que FirstActive sea
// determinista, como el ORDER BY created_at del repo real.
type fakeTenantRepo struct {
	order   []string
	tenants map[string]*entity.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[string]*entity.Tenant{}}
}

func (f *fakeTenantRepo) add(t *entity.Tenant) {
	f.order = append(f.order, t.ID)
	f.tenants[t.ID] = t
}

func (f *fakeTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	f.add(t)
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.tenants[id], nil
}

func (f *fakeTenantRepo) GetByDomain(_ context.Context, dom string) (*entity.Tenant, error) {
	for _, t := range f.tenants {
		if t.Domain == dom {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) FirstActive(_ context.Context) (*entity.Tenant, error) {
	for _, id := range f.order {
		if f.tenants[id].Active {
			return f.tenants[id], nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) List(_ context.Context, limit, offset int) ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for i, id := range f.order {
		if i < offset || len(out) >= limit {
			continue
		}
		out = append(out, f.tenants[id])
	}
	return out, nil
}

func (f *fakeTenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	f.tenants[t.ID] = t
	return nil
}

type fakeAdminRepo struct {
	admins map[string]*entity.TenantAdmin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*entity.TenantAdmin{}}
}

func (f *fakeAdminRepo) Create(_ context.Context, a *entity.TenantAdmin) error {
	f.admins[a.ID] = a
	return nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id string) (*entity.TenantAdmin, error) {
	return f.admins[id], nil
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, tenantID, email string) (*entity.TenantAdmin, error) {
	for _, a := range f.admins {
		if a.TenantID == tenantID && a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.TenantAdmin, error) {
	var out []*entity.TenantAdmin
	for _, a := range f.admins {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback contra los repos reales; con fail=true el
// callback corre sobre copias descartables, simulando el rollback.
type fakeTxRunner struct {
	tenants *fakeTenantRepo
	admins  *fakeAdminRepo
	fail    bool
}

func (f *fakeTxRunner) RunProvision(ctx context.Context, fn func(repository.TenantRepository, repository.TenantAdminRepository) error) error {
	if f.fail {
		if err := fn(newFakeTenantRepo(), newFakeAdminRepo()); err != nil {
			return err
		}
		return errors.New("commit falló")
	}
	return fn(f.tenants, f.admins)
}

type fixture struct {
	uc      *tenant.UseCase
	tenants *fakeTenantRepo
	admins  *fakeAdminRepo
	tx      *fakeTxRunner
}

func newFixture() *fixture {
	tenants := newFakeTenantRepo()
	admins := newFakeAdminRepo()
	tx := &fakeTxRunner{tenants: tenants, admins: admins}
	return &fixture{uc: tenant.NewUseCase(tenants, admins, tx), tenants: tenants, admins: admins, tx: tx}
}

func superAdmin() guard.Principal {
	return guard.Principal{Class: session.ClassPlatformAdmin, PrincipalID: "root-1", Role: session.RoleSuperAdmin}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprovisionamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestProvision_TenantSolo(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.Provision(context.Background(), superAdmin(), dto.CreateTenantRequest{
		Name: "Mármoles del Norte", Domain: "Norte.TEST",
	})
	require.NoError(t, err)
	assert.True(t, out.Active)
	assert.Equal(t, "norte.test", out.Domain, "el dominio se normaliza al guardar")
	assert.True(t, out.FeatureFlags[entity.FeatureCatalog], "el catálogo viene habilitado por defecto")
}

func TestProvision_DominioDuplicado(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.Provision(context.Background(), superAdmin(), dto.CreateTenantRequest{
		Name: "Norte", Domain: "norte.test",
	})
	require.NoError(t, err)

	_, err = fx.uc.Provision(context.Background(), superAdmin(), dto.CreateTenantRequest{
		Name: "Otro", Domain: "NORTE.TEST",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProvision_ConPrimerAdminEsTransaccional(t *testing.T) {
	fx := newFixture()

	out, err := fx.uc.Provision(context.Background(), superAdmin(), dto.CreateTenantRequest{
		Name:   "Norte",
		Domain: "norte.test",
		Admin:  &dto.CreateTenantAdminRequest{Email: "admin@norte.test", Password: "clave-segura"},
	})
	require.NoError(t, err)

	admins, err := fx.admins.ListByTenant(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@norte.test", admins[0].Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte("clave-segura")))
}

func TestProvision_RollbackNoDejaNada(t *testing.T) {
	fx := newFixture()
	fx.tx.fail = true

	_, err := fx.uc.Provision(context.Background(), superAdmin(), dto.CreateTenantRequest{
		Name:   "Norte",
		Domain: "norte.test",
		Admin:  &dto.CreateTenantAdminRequest{Email: "admin@norte.test", Password: "clave-segura"},
	})
	require.Error(t, err)
	assert.Empty(t, fx.tenants.tenants, "el tenant no debe quedar a medias")
	assert.Empty(t, fx.admins.admins)
}

func TestProvision_PasswordCorta(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.Provision(context.Background(), superAdmin(), dto.CreateTenantRequest{
		Name:   "Norte",
		Domain: "norte.test",
		Admin:  &dto.CreateTenantAdminRequest{Email: "admin@norte.test", Password: "corta"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización de plataforma
// ──────────────────────────────────────────────────────────────────────────────

// Solo el super_admin opera tenants; el rol se verifica siempre, incluso en la
// clase de plataforma.
func TestSoloPlataformaConRol(t *testing.T) {
	fx := newFixture()
	req := dto.CreateTenantRequest{Name: "Norte", Domain: "norte.test"}

	tenantAdmin := guard.Principal{Class: session.ClassTenantAdmin, PrincipalID: "a", Role: session.RoleTenantAdmin, TenantID: "t-1"}
	_, err := fx.uc.Provision(context.Background(), tenantAdmin, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	sinRol := guard.Principal{Class: session.ClassPlatformAdmin, PrincipalID: "root-1"}
	_, err = fx.uc.Provision(context.Background(), sinRol, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = fx.uc.List(context.Background(), tenantAdmin, 20, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración
// ──────────────────────────────────────────────────────────────────────────────

func provisionar(t *testing.T, fx *fixture, dom string) string {
	t.Helper()
	out, err := fx.uc.Provision(context.Background(), superAdmin(), dto.CreateTenantRequest{
		Name: dom, Domain: dom,
	})
	require.NoError(t, err)
	return out.ID
}

func TestCreateAdmin_EmailDuplicado(t *testing.T) {
	fx := newFixture()
	id := provisionar(t, fx, "norte.test")

	_, err := fx.uc.CreateAdmin(context.Background(), superAdmin(), id, dto.CreateTenantAdminRequest{
		Email: "admin@norte.test", Password: "clave-segura",
	})
	require.NoError(t, err)

	_, err = fx.uc.CreateAdmin(context.Background(), superAdmin(), id, dto.CreateTenantAdminRequest{
		Email: "admin@norte.test", Password: "otra-clave-larga",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = fx.uc.CreateAdmin(context.Background(), superAdmin(), "no-existe", dto.CreateTenantAdminRequest{
		Email: "x@y.test", Password: "clave-segura",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeactivate_EsBlandoEIdempotente(t *testing.T) {
	fx := newFixture()
	id := provisionar(t, fx, "norte.test")

	out, err := fx.uc.Deactivate(context.Background(), superAdmin(), id)
	require.NoError(t, err)
	assert.False(t, out.Active)

	// El registro sigue existiendo y la operación es repetible
	out, err = fx.uc.Deactivate(context.Background(), superAdmin(), id)
	require.NoError(t, err)
	assert.False(t, out.Active)

	got, err := fx.uc.Get(context.Background(), superAdmin(), id)
	require.NoError(t, err)
	assert.Equal(t, "norte.test", got.Domain)
}

func TestList_Paginacion(t *testing.T) {
	fx := newFixture()
	provisionar(t, fx, "a.test")
	provisionar(t, fx, "b.test")
	provisionar(t, fx, "c.test")

	page, err := fx.uc.List(context.Background(), superAdmin(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = fx.uc.List(context.Background(), superAdmin(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
