package dto

import "github.com/shopspring/decimal"

// DebitRequest cobro de una operación IA: por clave de acción de la tabla de
// precios, o por monto explícito. Exactamente uno de los dos.
type DebitRequest struct {
	Action string          `json:"action" validate:"omitempty,oneof=chat_message image_generation model_3d_draft model_3d_high"`
	Amount decimal.Decimal `json:"amount" validate:"omitempty"`
}

// BalanceResponse saldo vigente de créditos.
type BalanceResponse struct {
	CustomerID string `json:"customer_id"`
	Balance    string `json:"balance"`
}

// DebitResponse resultado de un débito exitoso.
type DebitResponse struct {
	Action  string `json:"action,omitempty"`
	Cost    string `json:"cost"`
	Balance string `json:"balance"`
}

// CreditRequest recarga de saldo por un admin de tenant.
type CreditRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// InsufficientCreditsResponse cuerpo del 402: saldo y costo requerido.
type InsufficientCreditsResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Balance  string `json:"balance"`
	Required string `json:"required"`
}
