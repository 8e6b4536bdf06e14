package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTenantRequest aprovisionamiento de un tenant (solo admin de plataforma).
// Admin es opcional: si viene, el primer admin del tenant se crea en la misma
// transacción.
type CreateTenantRequest struct {
	Name         string                    `json:"name" validate:"required,min=2,max=200"`
	Domain       string                    `json:"domain" validate:"required,fqdn|eq=localhost"`
	FeatureFlags map[string]bool           `json:"feature_flags"`
	AIBudget     decimal.Decimal           `json:"ai_budget"`
	Admin        *CreateTenantAdminRequest `json:"admin"`
}

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Domain       string          `json:"domain"`
	Active       bool            `json:"active"`
	FeatureFlags map[string]bool `json:"feature_flags"`
	AIBudget     string          `json:"ai_budget"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
