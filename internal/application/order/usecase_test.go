package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/guard"
	"github.com/jhoicas/marmolia-api/internal/application/order"
	"github.com/jhoicas/marmolia-api/internal/application/ports"
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
	"github.com/jhoicas/marmolia-api/pkg/logger"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (scope por tenant, igual que los repos reales)
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo { return &fakeOrderRepo{orders: map[string]*entity.Order{}} }

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, tenantID, customerID string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.TenantID == tenantID && o.CustomerID == customerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) SummariesByTenant(_ context.Context, tenantID string, _, _ int) ([]*repository.OrderSummary, error) {
	var out []*repository.OrderSummary
	for _, o := range f.orders {
		if o.TenantID == tenantID {
			out = append(out, &repository.OrderSummary{Order: *o, CustomerName: "Ana", CustomerEmail: "ana@cliente.com"})
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, o *entity.Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) CountByStatus(_ context.Context, tenantID string) (map[string]int, error) {
	out := map[string]int{}
	for _, o := range f.orders {
		if o.TenantID == tenantID {
			out[o.Status]++
		}
	}
	return out, nil
}

type fakeStoneRepo struct {
	stones map[string]*entity.Stone
}

func newFakeStoneRepo() *fakeStoneRepo { return &fakeStoneRepo{stones: map[string]*entity.Stone{}} }

func (f *fakeStoneRepo) Create(_ context.Context, s *entity.Stone) error {
	f.stones[s.ID] = s
	return nil
}

func (f *fakeStoneRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Stone, error) {
	s, ok := f.stones[id]
	if !ok || s.TenantID != tenantID {
		return nil, nil
	}
	return s, nil
}

func (f *fakeStoneRepo) ListByTenant(_ context.Context, tenantID string, onlyActive bool, _, _ int) ([]*entity.Stone, error) {
	var out []*entity.Stone
	for _, s := range f.stones {
		if s.TenantID == tenantID && (!onlyActive || s.Active) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoneRepo) Update(_ context.Context, s *entity.Stone) error {
	f.stones[s.ID] = s
	return nil
}

func (f *fakeStoneRepo) Deactivate(_ context.Context, tenantID, id string) (bool, error) {
	s, ok := f.stones[id]
	if !ok || s.TenantID != tenantID {
		return false, nil
	}
	s.Active = false
	return true, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, tenantID, email string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.TenantID == tenantID && c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	f.customers[c.ID] = c
	return nil
}

type fakeAdminRepo struct {
	admins map[string]*entity.TenantAdmin
}

func newFakeAdminRepo() *fakeAdminRepo { return &fakeAdminRepo{admins: map[string]*entity.TenantAdmin{}} }

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

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo { return &fakeTenantRepo{tenants: map[string]*entity.Tenant{}} }

func (f *fakeTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	f.tenants[t.ID] = t
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
	for _, t := range f.tenants {
		if t.Active {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) List(_ context.Context, _, _ int) ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for _, t := range f.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	f.tenants[t.ID] = t
	return nil
}

type fakeCreditRepo struct{}

func (fakeCreditRepo) GetBalance(_ context.Context, _, _ string) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}
func (fakeCreditRepo) Debit(_ context.Context, _, _ string, _ decimal.Decimal) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}
func (fakeCreditRepo) Credit(_ context.Context, _, _ string, _ decimal.Decimal) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}
func (fakeCreditRepo) TotalByTenant(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.NewFromFloat(19.90), nil
}

// fakeNotifier registra los envíos; con fail=true todos fallan.
type fakeNotifier struct {
	sent []ports.Notification
	fail bool
}

func (f *fakeNotifier) Send(_ context.Context, n ports.Notification) error {
	if f.fail {
		return errors.New("smtp caído")
	}
	f.sent = append(f.sent, n)
	return nil
}

type fakePDF struct{}

func (fakePDF) GenerateQuotePDF(_ context.Context, _ *entity.Tenant, _ *entity.Order, _ *entity.Customer, _ *entity.Stone) ([]byte, error) {
	return []byte("%PDF-1.7"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del caso de uso
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantA   = "tenant-a"
	tenantB   = "tenant-b"
	clienteID = "cliente-1"
	piedraID  = "piedra-1"
)

type fixture struct {
	uc       *order.UseCase
	orders   *fakeOrderRepo
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orders := newFakeOrderRepo()
	stones := newFakeStoneRepo()
	customers := newFakeCustomerRepo()
	admins := newFakeAdminRepo()
	tenants := newFakeTenantRepo()
	notifier := &fakeNotifier{}

	tenants.tenants[tenantA] = &entity.Tenant{ID: tenantA, Name: "Mármoles del Norte", Domain: "norte.test", Active: true}
	customers.customers[clienteID] = &entity.Customer{ID: clienteID, TenantID: tenantA, Username: "Ana", Email: "ana@cliente.com"}
	admins.admins["admin-1"] = &entity.TenantAdmin{ID: "admin-1", TenantID: tenantA, Email: "admin@norte.test"}
	stones.stones[piedraID] = &entity.Stone{ID: piedraID, TenantID: tenantA, Brand: "Silestone", Active: true,
		Names: entity.LocalizedName{"es": "Cuarzo Blanco Zeus"}}

	uc := order.NewUseCase(orders, stones, customers, admins, tenants, fakeCreditRepo{}, notifier, fakePDF{}, logger.NewNop())
	return &fixture{uc: uc, orders: orders, notifier: notifier}
}

func cliente() guard.Principal {
	return guard.Principal{Class: session.ClassCustomer, PrincipalID: clienteID, TenantID: tenantA}
}

func adminTenantA() guard.Principal {
	return guard.Principal{Class: session.ClassTenantAdmin, PrincipalID: "admin-1", Role: session.RoleTenantAdmin, TenantID: tenantA}
}

func adminTenantB() guard.Principal {
	return guard.Principal{Class: session.ClassTenantAdmin, PrincipalID: "admin-b", Role: session.RoleTenantAdmin, TenantID: tenantB}
}

func str(s string) *string { return &s }

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_IniciaEnPendingQuote(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.Create(context.Background(), cliente(), dto.CreateOrderRequest{
		StoneID:  piedraID,
		Timeline: entity.TimelineASAP,
		Budget:   dec("3000.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPendingQuote, out.Status)
	assert.Equal(t, tenantA, out.TenantID)
	assert.Equal(t, clienteID, out.CustomerID)
	assert.Empty(t, out.FinalQuotePrice, "un pedido recién creado no tiene precio")

	// Dos notificaciones: cliente y admin del tenant
	require.Len(t, fx.notifier.sent, 2)
	assert.Equal(t, ports.NotifyOrderCreatedCustomer, fx.notifier.sent[0].Kind)
	assert.Equal(t, ports.NotifyOrderCreatedAdmin, fx.notifier.sent[1].Kind)
}

func TestCreate_DescripcionLibreSinPiedra(t *testing.T) {
	fx := newFixture(t)
	out, err := fx.uc.Create(context.Background(), cliente(), dto.CreateOrderRequest{
		Description: "Mesón de cocina en granito negro, 2.4 x 0.6 m",
		Timeline:    entity.TimelineWithinMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPendingQuote, out.Status)
}

func TestCreate_RequierePiedraODescripcion(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.uc.Create(context.Background(), cliente(), dto.CreateOrderRequest{
		Timeline: entity.TimelineASAP,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_PlazoFueraDeLaEnumeracion(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.uc.Create(context.Background(), cliente(), dto.CreateOrderRequest{
		Description: "algo",
		Timeline:    "para-ayer",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_PiedraDeOtroTenantEsNotFound(t *testing.T) {
	fx := newFixture(t)
	clienteB := guard.Principal{Class: session.ClassCustomer, PrincipalID: "cliente-b", TenantID: tenantB}
	_, err := fx.uc.Create(context.Background(), clienteB, dto.CreateOrderRequest{
		StoneID:  piedraID, // existe, pero en tenant A
		Timeline: entity.TimelineASAP,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El fallo del notificador jamás revierte la creación del pedido.
func TestCreate_FalloDeNotificacionNoRevierte(t *testing.T) {
	fx := newFixture(t)
	fx.notifier.fail = true

	out, err := fx.uc.Create(context.Background(), cliente(), dto.CreateOrderRequest{
		StoneID:  piedraID,
		Timeline: entity.TimelineNoHurry,
	})
	require.NoError(t, err, "la notificación es best-effort")
	assert.NotNil(t, fx.orders.orders[out.ID], "el pedido debe quedar persistido")
}

func TestCreate_SoloClientes(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.uc.Create(context.Background(), adminTenantA(), dto.CreateOrderRequest{
		Description: "x", Timeline: entity.TimelineASAP,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura con autorización
// ──────────────────────────────────────────────────────────────────────────────

func crearPedido(t *testing.T, fx *fixture) string {
	t.Helper()
	out, err := fx.uc.Create(context.Background(), cliente(), dto.CreateOrderRequest{
		StoneID:  piedraID,
		Timeline: entity.TimelineASAP,
	})
	require.NoError(t, err)
	return out.ID
}

func TestGet_DuenoVeSuPedido(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	out, err := fx.uc.Get(context.Background(), cliente(), id)
	require.NoError(t, err)
	assert.Equal(t, id, out.ID)
}

func TestGet_OtroClienteDelMismoTenantRecibeNotFound(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	otro := guard.Principal{Class: session.ClassCustomer, PrincipalID: "cliente-2", TenantID: tenantA}
	_, err := fx.uc.Get(context.Background(), otro, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Cross-tenant: NotFound, nunca Forbidden — no se debe poder sondear si el id
// existe en otro tenant.
func TestGet_CrossTenantEsNotFound(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	clienteB := guard.Principal{Class: session.ClassCustomer, PrincipalID: clienteID, TenantID: tenantB}
	_, err := fx.uc.Get(context.Background(), clienteB, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrForbidden)

	_, err = fx.uc.Get(context.Background(), adminTenantB(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}

func TestGet_AdminDelTenantVeCualquierPedido(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	out, err := fx.uc.Get(context.Background(), adminTenantA(), id)
	require.NoError(t, err)
	assert.Equal(t, id, out.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Avance de estado y cotización
// ──────────────────────────────────────────────────────────────────────────────

// Escenario completo: el admin cotiza (1500.00 + quoted) y un cliente de otro
// tenant pidiendo el mismo id recibe NotFound.
func TestAdminUpdate_CotizaYProtegeCrossTenant(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	out, err := fx.uc.AdminUpdate(context.Background(), adminTenantA(), id, dto.UpdateOrderRequest{
		Status:          str(entity.OrderQuoted),
		FinalQuotePrice: decPtr("1500.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderQuoted, out.Status)
	assert.Equal(t, "1500.00", out.FinalQuotePrice)

	clienteB := guard.Principal{Class: session.ClassCustomer, PrincipalID: "cliente-b", TenantID: tenantB}
	_, err = fx.uc.Get(context.Background(), clienteB, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminUpdate_TransicionesIlegales(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	// pending_quote → completed salta estados
	_, err := fx.uc.AdminUpdate(context.Background(), adminTenantA(), id, dto.UpdateOrderRequest{
		Status: str(entity.OrderCompleted),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Cancelar y luego intentar revivir
	_, err = fx.uc.AdminUpdate(context.Background(), adminTenantA(), id, dto.UpdateOrderRequest{
		Status: str(entity.OrderCancelled),
	})
	require.NoError(t, err)
	_, err = fx.uc.AdminUpdate(context.Background(), adminTenantA(), id, dto.UpdateOrderRequest{
		Status: str(entity.OrderQuoted),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "la cancelación es de una sola vía")
}

func TestAdminUpdate_PrecioAntesDeCotizarEsConflicto(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	_, err := fx.uc.AdminUpdate(context.Background(), adminTenantA(), id, dto.UpdateOrderRequest{
		FinalQuotePrice: decPtr("900.00"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"no se puede fijar precio con el pedido aún en pending_quote")
}

func TestAdminUpdate_PrecioNoEsMonotonico(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	_, err := fx.uc.AdminUpdate(context.Background(), adminTenantA(), id, dto.UpdateOrderRequest{
		Status: str(entity.OrderQuoted), FinalQuotePrice: decPtr("1500.00"),
	})
	require.NoError(t, err)

	// Corrección a la baja permitida; updatedAt se estampa en cada cambio
	antes, err := fx.uc.Get(context.Background(), adminTenantA(), id)
	require.NoError(t, err)
	out, err := fx.uc.AdminUpdate(context.Background(), adminTenantA(), id, dto.UpdateOrderRequest{
		FinalQuotePrice: decPtr("1200.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1200.00", out.FinalQuotePrice)
	assert.False(t, out.UpdatedAt.Before(antes.UpdatedAt))
}

func TestAdminUpdate_ClienteNoPuedeAvanzarEstado(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	_, err := fx.uc.AdminUpdate(context.Background(), cliente(), id, dto.UpdateOrderRequest{
		Status: str(entity.OrderQuoted),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados, dashboard y PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestListMine_SoloLosPropios(t *testing.T) {
	fx := newFixture(t)
	crearPedido(t, fx)
	crearPedido(t, fx)

	list, err := fx.uc.ListMine(context.Background(), cliente(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	otro := guard.Principal{Class: session.ClassCustomer, PrincipalID: "cliente-2", TenantID: tenantA}
	list, err = fx.uc.ListMine(context.Background(), otro, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAdminList_ResumenesDesnormalizados(t *testing.T) {
	fx := newFixture(t)
	crearPedido(t, fx)

	list, err := fx.uc.AdminList(context.Background(), adminTenantA(), "es", 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].CustomerName)
}

func TestDashboard_ConteosPorEstado(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)
	crearPedido(t, fx)
	_, err := fx.uc.AdminUpdate(context.Background(), adminTenantA(), id, dto.UpdateOrderRequest{
		Status: str(entity.OrderQuoted),
	})
	require.NoError(t, err)

	out, err := fx.uc.Dashboard(context.Background(), adminTenantA())
	require.NoError(t, err)
	assert.Equal(t, 1, out.OrdersByStatus[entity.OrderPendingQuote])
	assert.Equal(t, 1, out.OrdersByStatus[entity.OrderQuoted])
	assert.Equal(t, "19.90", out.OutstandingCredits)
}

func TestQuotePDF_RequierePrecio(t *testing.T) {
	fx := newFixture(t)
	id := crearPedido(t, fx)

	_, err := fx.uc.QuotePDF(context.Background(), adminTenantA(), id)
	assert.ErrorIs(t, err, domain.ErrConflict, "sin precio final no hay cotización que imprimir")

	_, err = fx.uc.AdminUpdate(context.Background(), adminTenantA(), id, dto.UpdateOrderRequest{
		Status: str(entity.OrderQuoted), FinalQuotePrice: decPtr("1500.00"),
	})
	require.NoError(t, err)

	pdf, err := fx.uc.QuotePDF(context.Background(), adminTenantA(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
