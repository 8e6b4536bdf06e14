package credit

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/guard"
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
	"github.com/jhoicas/marmolia-api/pkg/logger"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// Acciones IA cobrables y su precio fijo en créditos.
const (
	ActionChatMessage     = "chat_message"
	ActionImageGeneration = "image_generation"
	ActionModel3DDraft    = "model_3d_draft"
	ActionModel3DHigh     = "model_3d_high"
)

// prices tabla fija de precios por acción. Dos decimales siempre.
var prices = map[string]decimal.Decimal{
	ActionChatMessage:     decimal.NewFromFloat(0.02),
	ActionImageGeneration: decimal.NewFromFloat(0.25),
	ActionModel3DDraft:    decimal.NewFromFloat(0.50),
	ActionModel3DHigh:     decimal.NewFromFloat(2.00),
}

// ActionCost devuelve el costo de una acción de la tabla.
func ActionCost(action string) (decimal.Decimal, bool) {
	c, ok := prices[action]
	return c, ok
}

// UseCase ledger de créditos prepagados: consulta, débito por operación IA y
// recarga de admin. Toda la aritmética es decimal de punto fijo; el débito es
// un único UPDATE condicional en el repositorio (sin carrera read-then-write).
type UseCase struct {
	credits repository.CreditRepository
	log     *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(credits repository.CreditRepository, log *logger.Logger) *UseCase {
	return &UseCase{credits: credits, log: log}
}

// authorize guard compartido: el saldo es recurso personal del cliente.
func (uc *UseCase) authorize(p guard.Principal, customerID string) error {
	return guard.Authorize(p, guard.Resource{TenantID: p.TenantID, OwnerID: customerID})
}

// GetBalance saldo vigente. Cliente inexistente (o de otro tenant) → NotFound.
func (uc *UseCase) GetBalance(ctx context.Context, p guard.Principal, customerID string) (*dto.BalanceResponse, error) {
	if err := uc.authorize(p, customerID); err != nil {
		return nil, err
	}
	balance, found, err := uc.credits.GetBalance(ctx, p.TenantID, customerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &dto.BalanceResponse{CustomerID: customerID, Balance: balance.StringFixed(2)}, nil
}

// Debit cobra una acción de la tabla de precios o un monto explícito
// (exactamente uno de los dos). Si el saldo no alcanza devuelve
// InsufficientCreditsError con saldo y costo, sin mutar nada.
func (uc *UseCase) Debit(ctx context.Context, p guard.Principal, customerID string, in dto.DebitRequest) (*dto.DebitResponse, error) {
	if err := uc.authorize(p, customerID); err != nil {
		return nil, err
	}
	cost, err := resolveCost(in)
	if err != nil {
		return nil, err
	}

	newBalance, applied, err := uc.credits.Debit(ctx, p.TenantID, customerID, cost)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Nada se mutó: distinguir cliente inexistente de saldo insuficiente.
		balance, found, err := uc.credits.GetBalance(ctx, p.TenantID, customerID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.InsufficientCreditsError{Balance: balance, Required: cost}
	}

	uc.log.Info().
		Str("customer_id", customerID).
		Str("action", in.Action).
		Str("cost", cost.StringFixed(2)).
		Str("balance", newBalance.StringFixed(2)).
		Msg("débito de créditos aplicado")

	return &dto.DebitResponse{
		Action:  in.Action,
		Cost:    cost.StringFixed(2),
		Balance: newBalance.StringFixed(2),
	}, nil
}

// Credit recarga de saldo, solo admin de tenant; sin tope superior.
func (uc *UseCase) Credit(ctx context.Context, p guard.Principal, customerID string, in dto.CreditRequest) (*dto.BalanceResponse, error) {
	if p.Class != session.ClassTenantAdmin {
		return nil, domain.ErrForbidden
	}
	if err := uc.authorize(p, customerID); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() || in.Amount.Exponent() < -2 {
		return nil, domain.ErrInvalidInput
	}
	newBalance, applied, err := uc.credits.Credit(ctx, p.TenantID, customerID, in.Amount)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ErrNotFound
	}
	return &dto.BalanceResponse{CustomerID: customerID, Balance: newBalance.StringFixed(2)}, nil
}

// resolveCost costo del débito: clave de acción o monto explícito, exactamente
// uno. El monto explícito debe ser positivo y de máximo dos decimales.
func resolveCost(in dto.DebitRequest) (decimal.Decimal, error) {
	hasAmount := !in.Amount.IsZero()
	if in.Action != "" && hasAmount {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if in.Action != "" {
		cost, ok := ActionCost(in.Action)
		if !ok {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return cost, nil
	}
	if !hasAmount || in.Amount.IsNegative() || in.Amount.Exponent() < -2 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return in.Amount, nil
}
