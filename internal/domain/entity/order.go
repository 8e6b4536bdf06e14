package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido (solicitud de cotización).
const (
	OrderPendingQuote = "pending_quote" // estado inicial
	OrderQuoted       = "quoted"
	OrderInProgress   = "in_progress"
	OrderCompleted    = "completed" // terminal
	OrderCancelled    = "cancelled" // terminal, alcanzable desde cualquier no-terminal
)

// Plazos deseados que puede elegir el cliente al solicitar cotización.
const (
	TimelineASAP         = "asap"
	TimelineWithin2Weeks = "within_2_weeks"
	TimelineWithinMonth  = "within_a_month"
	TimelineNoHurry      = "not_in_a_hurry"
)

// orderTransitions tabla de transiciones legales. Cancelación se trata aparte
// en CanTransition (válida desde cualquier estado no terminal).
var orderTransitions = map[string]string{
	OrderPendingQuote: OrderQuoted,
	OrderQuoted:       OrderInProgress,
	OrderInProgress:   OrderCompleted,
}

// ValidTimeline indica si el plazo pertenece a la enumeración fija.
func ValidTimeline(tl string) bool {
	switch tl {
	case TimelineASAP, TimelineWithin2Weeks, TimelineWithinMonth, TimelineNoHurry:
		return true
	}
	return false
}

// ValidOrderStatus indica si el estado es uno de los cinco conocidos.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPendingQuote, OrderQuoted, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// OrderStatusTerminal indica si el estado no admite más transiciones.
func OrderStatusTerminal(s string) bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransition valida una transición de estado.
// Legales: pending_quote→quoted, quoted→in_progress, in_progress→completed y
// cualquier-no-terminal→cancelled. No hay salida de cancelled ni de completed.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	if OrderStatusTerminal(from) {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	return orderTransitions[from] == to
}

// StatusAllowsPrice indica si el estado admite fijar/actualizar el precio final
// cotizado: quoted, in_progress o completed.
func StatusAllowsPrice(status string) bool {
	return status == OrderQuoted || status == OrderInProgress || status == OrderCompleted
}

// Order pedido de un cliente: referencia una piedra del catálogo o lleva una
// descripción libre. TenantID y CustomerID son inmutables después de crear;
// el invariante order.tenant == order.customer.tenant se fija en la creación.
type Order struct {
	ID              string
	TenantID        string
	CustomerID      string
	StoneID         string // opcional: referencia al catálogo
	Description     string // opcional: texto libre si no hay piedra de catálogo
	Timeline        string // ver constantes Timeline*
	Budget          decimal.Decimal
	Status          string // ver constantes Order*
	FinalQuotePrice *decimal.Decimal // nil hasta que el admin cotiza
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
