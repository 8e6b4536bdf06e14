package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_CaminoFeliz(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.OrderPendingQuote, entity.OrderQuoted))
	assert.True(t, entity.CanTransition(entity.OrderQuoted, entity.OrderInProgress))
	assert.True(t, entity.CanTransition(entity.OrderInProgress, entity.OrderCompleted))
}

func TestCanTransition_CancelacionDesdeNoTerminales(t *testing.T) {
	for _, from := range []string{entity.OrderPendingQuote, entity.OrderQuoted, entity.OrderInProgress} {
		assert.True(t, entity.CanTransition(from, entity.OrderCancelled),
			"cancelación debe ser válida desde %s", from)
	}
}

func TestCanTransition_RechazaTodoLoDemas(t *testing.T) {
	casos := []struct{ from, to string }{
		// Sin saltos hacia adelante
		{entity.OrderPendingQuote, entity.OrderInProgress},
		{entity.OrderPendingQuote, entity.OrderCompleted},
		{entity.OrderQuoted, entity.OrderCompleted},
		// Sin retrocesos
		{entity.OrderQuoted, entity.OrderPendingQuote},
		{entity.OrderInProgress, entity.OrderQuoted},
		// Los terminales no tienen salida (la cancelación es de una sola vía)
		{entity.OrderCancelled, entity.OrderPendingQuote},
		{entity.OrderCancelled, entity.OrderQuoted},
		{entity.OrderCompleted, entity.OrderInProgress},
		{entity.OrderCompleted, entity.OrderCancelled},
		// Identidad
		{entity.OrderQuoted, entity.OrderQuoted},
	}
	for _, c := range casos {
		assert.False(t, entity.CanTransition(c.from, c.to),
			"%s → %s no debe ser una transición válida", c.from, c.to)
	}
}

func TestStatusAllowsPrice(t *testing.T) {
	assert.False(t, entity.StatusAllowsPrice(entity.OrderPendingQuote),
		"no se puede fijar precio antes de cotizar")
	assert.False(t, entity.StatusAllowsPrice(entity.OrderCancelled))
	assert.True(t, entity.StatusAllowsPrice(entity.OrderQuoted))
	assert.True(t, entity.StatusAllowsPrice(entity.OrderInProgress))
	assert.True(t, entity.StatusAllowsPrice(entity.OrderCompleted))
}

func TestValidTimeline(t *testing.T) {
	for _, tl := range []string{
		entity.TimelineASAP, entity.TimelineWithin2Weeks,
		entity.TimelineWithinMonth, entity.TimelineNoHurry,
	} {
		assert.True(t, entity.ValidTimeline(tl))
	}
	assert.False(t, entity.ValidTimeline("mañana"))
	assert.False(t, entity.ValidTimeline(""))
}
