package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStoneRequest alta de una piedra en el catálogo del tenant.
type CreateStoneRequest struct {
	Brand  string            `json:"brand" validate:"required,max=120"`
	Series string            `json:"series" validate:"omitempty,max=120"`
	Type   string            `json:"type" validate:"required,oneof=marble granite quartz onyx"`
	Names  map[string]string `json:"names" validate:"required"`
	Price  decimal.Decimal   `json:"price" validate:"required"`
}

// UpdateStoneRequest cambios de una piedra. Campos nil = sin cambio.
type UpdateStoneRequest struct {
	Brand  *string            `json:"brand"`
	Series *string            `json:"series"`
	Type   *string            `json:"type"`
	Names  *map[string]string `json:"names"`
	Price  *decimal.Decimal   `json:"price"`
	Active *bool              `json:"active"`
}

// StoneResponse salida de una piedra. Name viene resuelto al locale pedido
// (fallback: locale → en → cualquier valor); Names trae el mapa completo.
type StoneResponse struct {
	ID        string            `json:"id"`
	TenantID  string            `json:"tenant_id"`
	Brand     string            `json:"brand"`
	Series    string            `json:"series,omitempty"`
	Type      string            `json:"type"`
	Name      string            `json:"name"`
	Names     map[string]string `json:"names"`
	Price     string            `json:"price"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
