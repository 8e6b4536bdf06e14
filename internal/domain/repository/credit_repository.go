package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreditRepository define el puerto del saldo prepagado de créditos IA.
// El saldo vive como columna de customers; este puerto existe aparte porque
// sus mutaciones tienen semántica propia (débito condicional atómico).
type CreditRepository interface {
	// GetBalance devuelve el saldo y si el cliente existe en el tenant.
	GetBalance(ctx context.Context, tenantID, customerID string) (decimal.Decimal, bool, error)

	// Debit resta amount en un solo UPDATE condicional
	// (balance = balance - amount WHERE balance >= amount). Devuelve el saldo
	// resultante y applied=false cuando no se mutó nada: cliente inexistente o
	// saldo insuficiente — el caso se distingue con GetBalance.
	Debit(ctx context.Context, tenantID, customerID string, amount decimal.Decimal) (decimal.Decimal, bool, error)

	// Credit suma amount sin tope (recarga de admin). applied=false si el
	// cliente no existe en el tenant.
	Credit(ctx context.Context, tenantID, customerID string, amount decimal.Decimal) (decimal.Decimal, bool, error)

	// TotalByTenant suma los saldos vigentes del tenant (dashboard).
	TotalByTenant(ctx context.Context, tenantID string) (decimal.Decimal, error)
}
