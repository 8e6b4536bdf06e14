package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
//
// ErrNotFound cubre tanto el recurso inexistente como el acceso cruzado de
// tenant o de dueño: ambos casos se reportan idéntico para no revelar la
// existencia de recursos de otro tenant.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrTenantNotFound     = errors.New("tenant no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
)

// ErrInsufficientCredits sentinela para errors.Is; el error concreto lleva
// el saldo y el costo requerido (ver InsufficientCreditsError).
var ErrInsufficientCredits = errors.New("créditos insuficientes")

// InsufficientCreditsError débito rechazado: el saldo actual no cubre el costo.
// El saldo NO se muta. Se reporta con ambos montos para que el cliente pueda
// mostrar cuánto falta.
type InsufficientCreditsError struct {
	Balance  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("créditos insuficientes: saldo %s, requerido %s",
		e.Balance.StringFixed(2), e.Required.StringFixed(2))
}

// Is permite errors.Is(err, ErrInsufficientCredits).
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}
