package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dominio especial que resuelve al primer tenant activo (uso local/desarrollo).
const BootstrapDomain = "localhost"

// Feature flags conocidos (columna jsonb feature_flags).
const (
	FeatureAIStudio = "ai_studio" // chat, imágenes y modelos 3D con IA (consume créditos)
	FeatureCatalog  = "catalog"   // catálogo público de piedras
	FeatureQuotePDF = "quote_pdf" // descarga de la cotización en PDF
)

// Tenant representa un negocio aislado dentro de la plataforma: dueño de sus
// clientes, su catálogo de piedras y sus pedidos. Se desactiva en blando
// (Active=false) y nunca se borra.
type Tenant struct {
	ID           string
	Name         string
	Domain       string          // dominio de origen, único en la plataforma
	Active       bool
	FeatureFlags map[string]bool // jsonb
	AIBudget     decimal.Decimal // presupuesto de gasto IA por período
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasFeature indica si el flag está activo para el tenant.
func (t *Tenant) HasFeature(flag string) bool {
	if t == nil || t.FeatureFlags == nil {
		return false
	}
	return t.FeatureFlags[flag]
}
