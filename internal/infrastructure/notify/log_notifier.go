package notify

import (
	"context"

	"github.com/jhoicas/marmolia-api/internal/application/ports"
	"github.com/jhoicas/marmolia-api/pkg/logger"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe las notificaciones al log en lugar de enviarlas. Se usa
// en desarrollo cuando no hay webhook configurado: el PIN de registro queda
// visible en la consola.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de desarrollo.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Send registra la notificación y nunca falla.
func (n *LogNotifier) Send(_ context.Context, msg ports.Notification) error {
	n.log.Info().
		Str("kind", msg.Kind).
		Str("tenant_id", msg.TenantID).
		Str("recipient", msg.Recipient).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("notificación (modo log)")
	return nil
}
