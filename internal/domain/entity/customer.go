package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Saldo inicial de créditos IA para una cuenta recién registrada.
var DefaultCreditBalance = decimal.NewFromFloat(10.00)

// Customer representa un cliente final de un tenant. Se autentica con
// email + PIN (el PIN se guarda hasheado con bcrypt, nunca en claro).
// CreditBalance es el saldo prepagado de uso de IA: un solo escalar mutable,
// siempre >= 0; los débitos se hacen con un UPDATE condicional en el repo.
type Customer struct {
	ID            string
	TenantID      string
	Username      string
	Email         string // único dentro del tenant
	Phone         string
	PINHash       string
	CreditBalance decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
