package credit_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marmolia-api/internal/application/credit"
	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/guard"
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/pkg/logger"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de créditos (misma semántica que el UPDATE condicional)
// ──────────────────────────────────────────────────────────────────────────────

type saldoKey struct{ tenantID, customerID string }

type fakeCreditRepo struct {
	saldos map[saldoKey]decimal.Decimal
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{saldos: map[saldoKey]decimal.Decimal{}}
}

func (f *fakeCreditRepo) GetBalance(_ context.Context, tenantID, customerID string) (decimal.Decimal, bool, error) {
	b, ok := f.saldos[saldoKey{tenantID, customerID}]
	return b, ok, nil
}

func (f *fakeCreditRepo) Debit(_ context.Context, tenantID, customerID string, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	k := saldoKey{tenantID, customerID}
	b, ok := f.saldos[k]
	// Débito condicional: solo muta si el saldo cubre el costo.
	if !ok || b.LessThan(amount) {
		return decimal.Zero, false, nil
	}
	nuevo := b.Sub(amount)
	f.saldos[k] = nuevo
	return nuevo, true, nil
}

func (f *fakeCreditRepo) Credit(_ context.Context, tenantID, customerID string, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	k := saldoKey{tenantID, customerID}
	b, ok := f.saldos[k]
	if !ok {
		return decimal.Zero, false, nil
	}
	nuevo := b.Add(amount)
	f.saldos[k] = nuevo
	return nuevo, true, nil
}

func (f *fakeCreditRepo) TotalByTenant(_ context.Context, tenantID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for k, b := range f.saldos {
		if k.tenantID == tenantID {
			total = total.Add(b)
		}
	}
	return total, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantA   = "tenant-a"
	tenantB   = "tenant-b"
	clienteID = "cliente-1"
)

func clientePrincipal() guard.Principal {
	return guard.Principal{Class: session.ClassCustomer, PrincipalID: clienteID, TenantID: tenantA}
}

func adminPrincipal() guard.Principal {
	return guard.Principal{Class: session.ClassTenantAdmin, PrincipalID: "admin-1", Role: session.RoleTenantAdmin, TenantID: tenantA}
}

func newUC(repo *fakeCreditRepo) *credit.UseCase {
	return credit.NewUseCase(repo, logger.NewNop())
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios del ledger
// ──────────────────────────────────────────────────────────────────────────────

// Cuenta nueva con 10.00; cinco mensajes de chat a 0.02 dejan 9.90.
func TestDebit_CincoMensajesDeChat(t *testing.T) {
	repo := newFakeCreditRepo()
	repo.saldos[saldoKey{tenantA, clienteID}] = dec("10.00")
	uc := newUC(repo)

	var out *dto.DebitResponse
	var err error
	for i := 0; i < 5; i++ {
		out, err = uc.Debit(context.Background(), clientePrincipal(), clienteID,
			dto.DebitRequest{Action: credit.ActionChatMessage})
		require.NoError(t, err)
	}
	assert.Equal(t, "9.90", out.Balance)
	assert.Equal(t, "0.02", out.Cost)
}

// Saldo 0.05 y débito de 2.00 → InsufficientCredits con ambos montos, sin mutación.
func TestDebit_SaldoInsuficienteNoMuta(t *testing.T) {
	repo := newFakeCreditRepo()
	repo.saldos[saldoKey{tenantA, clienteID}] = dec("0.05")
	uc := newUC(repo)

	_, err := uc.Debit(context.Background(), clientePrincipal(), clienteID,
		dto.DebitRequest{Action: credit.ActionModel3DHigh})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientCredits)

	var ice *domain.InsufficientCreditsError
	require.ErrorAs(t, err, &ice)
	assert.True(t, ice.Balance.Equal(dec("0.05")), "el error debe reportar el saldo actual")
	assert.True(t, ice.Required.Equal(dec("2.00")), "el error debe reportar el costo requerido")

	// El saldo queda intacto
	b, _, _ := repo.GetBalance(context.Background(), tenantA, clienteID)
	assert.True(t, b.Equal(dec("0.05")), "un débito rechazado no debe mutar el saldo")
}

// Después de cualquier secuencia de débitos/recargas el saldo nunca baja de cero.
func TestDebit_SaldoNuncaNegativo(t *testing.T) {
	repo := newFakeCreditRepo()
	repo.saldos[saldoKey{tenantA, clienteID}] = dec("1.00")
	uc := newUC(repo)

	acciones := []string{
		credit.ActionModel3DDraft,   // 0.50 → 0.50
		credit.ActionImageGeneration, // 0.25 → 0.25
		credit.ActionModel3DDraft,   // rechazado (0.25 < 0.50)
		credit.ActionImageGeneration, // 0.25 → 0.00
		credit.ActionChatMessage,    // rechazado (0.00 < 0.02)
	}
	for _, a := range acciones {
		_, _ = uc.Debit(context.Background(), clientePrincipal(), clienteID, dto.DebitRequest{Action: a})
		b, _, _ := repo.GetBalance(context.Background(), tenantA, clienteID)
		assert.False(t, b.IsNegative(), "el saldo jamás puede ser negativo")
	}
	b, _, _ := repo.GetBalance(context.Background(), tenantA, clienteID)
	assert.True(t, b.Equal(dec("0.00")))
}

func TestDebit_MontoExplicito(t *testing.T) {
	repo := newFakeCreditRepo()
	repo.saldos[saldoKey{tenantA, clienteID}] = dec("5.00")
	uc := newUC(repo)

	out, err := uc.Debit(context.Background(), clientePrincipal(), clienteID,
		dto.DebitRequest{Amount: dec("1.25")})
	require.NoError(t, err)
	assert.Equal(t, "3.75", out.Balance)
}

func TestDebit_EntradasInvalidas(t *testing.T) {
	repo := newFakeCreditRepo()
	repo.saldos[saldoKey{tenantA, clienteID}] = dec("5.00")
	uc := newUC(repo)

	casos := []dto.DebitRequest{
		{},                                  // ni acción ni monto
		{Action: "teletransporte"},          // acción desconocida
		{Amount: dec("-1.00")},              // monto negativo
		{Amount: dec("0.001")},              // más de dos decimales
		{Action: credit.ActionChatMessage, Amount: dec("1.00")}, // ambos a la vez
	}
	for _, in := range casos {
		_, err := uc.Debit(context.Background(), clientePrincipal(), clienteID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %+v debe rechazarse", in)
	}
}

// Un cliente no puede operar el saldo de otro: se reporta como inexistente.
func TestDebit_SaldoAjenoEsNotFound(t *testing.T) {
	repo := newFakeCreditRepo()
	repo.saldos[saldoKey{tenantA, "otro-cliente"}] = dec("10.00")
	uc := newUC(repo)

	_, err := uc.Debit(context.Background(), clientePrincipal(), "otro-cliente",
		dto.DebitRequest{Action: credit.ActionChatMessage})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}

func TestGetBalance_ClienteInexistente(t *testing.T) {
	uc := newUC(newFakeCreditRepo())
	_, err := uc.GetBalance(context.Background(), clientePrincipal(), clienteID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recargas de admin
// ──────────────────────────────────────────────────────────────────────────────

func TestCredit_RecargaDeAdmin(t *testing.T) {
	repo := newFakeCreditRepo()
	repo.saldos[saldoKey{tenantA, clienteID}] = dec("0.05")
	uc := newUC(repo)

	out, err := uc.Credit(context.Background(), adminPrincipal(), clienteID,
		dto.CreditRequest{Amount: dec("100.00")})
	require.NoError(t, err)
	assert.Equal(t, "100.05", out.Balance, "la recarga no tiene tope superior")
}

func TestCredit_ClienteNoPuedeRecargarse(t *testing.T) {
	repo := newFakeCreditRepo()
	repo.saldos[saldoKey{tenantA, clienteID}] = dec("1.00")
	uc := newUC(repo)

	_, err := uc.Credit(context.Background(), clientePrincipal(), clienteID,
		dto.CreditRequest{Amount: dec("100.00")})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"la recarga es solo de admin: desde la superficie de cliente el saldo es debit-only")
}

func TestCredit_AdminDeOtroTenant(t *testing.T) {
	repo := newFakeCreditRepo()
	repo.saldos[saldoKey{tenantB, clienteID}] = dec("1.00")
	uc := newUC(repo)

	// El admin de tenant A intenta recargar un cliente de tenant B:
	// el scope por tenant lo hace invisible.
	_, err := uc.Credit(context.Background(), adminPrincipal(), clienteID,
		dto.CreditRequest{Amount: dec("10.00")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActionCost_TablaDePrecios(t *testing.T) {
	casos := map[string]string{
		credit.ActionChatMessage:     "0.02",
		credit.ActionImageGeneration: "0.25",
		credit.ActionModel3DDraft:    "0.50",
		credit.ActionModel3DHigh:     "2.00",
	}
	for accion, esperado := range casos {
		c, ok := credit.ActionCost(accion)
		require.True(t, ok)
		assert.Equal(t, esperado, c.StringFixed(2))
	}
	_, ok := credit.ActionCost("desconocida")
	assert.False(t, ok)
}
