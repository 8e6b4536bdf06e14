package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest solicitud de cotización de un cliente: referencia una
// piedra del catálogo o trae descripción libre; al menos una de las dos.
type CreateOrderRequest struct {
	StoneID     string          `json:"stone_id" validate:"omitempty,uuid"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Timeline    string          `json:"timeline" validate:"required,oneof=asap within_2_weeks within_a_month not_in_a_hurry"`
	Budget      decimal.Decimal `json:"budget" validate:"omitempty"`
}

// UpdateOrderRequest cambios de un admin de tenant: avance de estado y/o
// precio final cotizado. Campos nil = sin cambio.
type UpdateOrderRequest struct {
	Status          *string          `json:"status"`
	FinalQuotePrice *decimal.Decimal `json:"final_quote_price"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	CustomerID      string    `json:"customer_id"`
	StoneID         string    `json:"stone_id,omitempty"`
	Description     string    `json:"description,omitempty"`
	Timeline        string    `json:"timeline"`
	Budget          string    `json:"budget"`
	Status          string    `json:"status"`
	FinalQuotePrice string    `json:"final_quote_price,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OrderSummaryResponse fila para el listado de administración: pedido más
// nombres de cliente y piedra ya resueltos (JOIN único, sin N+1).
type OrderSummaryResponse struct {
	OrderResponse
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	StoneName     string `json:"stone_name,omitempty"`
	StoneBrand    string `json:"stone_brand,omitempty"`
}

// DashboardResponse métricas agregadas del tenant para el panel de admin.
type DashboardResponse struct {
	OrdersByStatus     map[string]int `json:"orders_by_status"`
	OutstandingCredits string         `json:"outstanding_credits"`
}
