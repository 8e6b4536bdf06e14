package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Tipos de piedra del catálogo.
const (
	StoneTypeMarble  = "marble"
	StoneTypeGranite = "granite"
	StoneTypeQuartz  = "quartz"
	StoneTypeOnyx    = "onyx"
)

// LocalizedName nombre multi-idioma de una piedra, tipado (columna jsonb).
// El orden de resolución está definido una sola vez aquí, en el borde del
// modelo: locale pedido → inglés → cualquier valor disponible.
type LocalizedName map[string]string

// Resolve devuelve el nombre para el locale pedido aplicando el orden de
// fallback. Acepta tags BCP 47 ("es", "es-CO", "en-US"); un tag inválido cae
// directo al fallback.
func (n LocalizedName) Resolve(locale string) string {
	if len(n) == 0 {
		return ""
	}
	if tag, err := language.Parse(locale); err == nil {
		base, _ := tag.Base()
		if v, ok := n[tag.String()]; ok && v != "" {
			return v
		}
		if v, ok := n[base.String()]; ok && v != "" {
			return v
		}
	}
	if v, ok := n["en"]; ok && v != "" {
		return v
	}
	// Último recurso: cualquier valor no vacío, en orden estable.
	for _, key := range sortedKeys(n) {
		if n[key] != "" {
			return n[key]
		}
	}
	return ""
}

func sortedKeys(n LocalizedName) []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stone ítem del catálogo de un tenant. Se desactiva en blando (Active=false)
// para no romper los pedidos históricos que lo referencian.
type Stone struct {
	ID        string
	TenantID  string
	Brand     string
	Series    string
	Type      string // ver constantes StoneType*
	Names     LocalizedName
	Price     decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
