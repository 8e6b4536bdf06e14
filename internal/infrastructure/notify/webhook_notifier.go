package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/marmolia-api/internal/application/ports"
)

// Verificar en tiempo de compilación que WebhookNotifier implementa Notifier.
var _ ports.Notifier = (*WebhookNotifier)(nil)

// WebhookNotifier entrega las notificaciones a un servicio externo de correo
// vía webhook HTTP. Los casos de uso lo tratan como best-effort: un error aquí
// se registra y la operación de negocio sigue adelante.
type WebhookNotifier struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewWebhookNotifier construye el adaptador. Si url está vacío las llamadas
// devuelven error descriptivo en lugar de panic.
func NewWebhookNotifier(url, token string) *WebhookNotifier {
	return &WebhookNotifier{
		url:   url,
		token: token,
		httpClient: &http.Client{
			// Las notificaciones son best-effort: un webhook lento no puede
			// retener la respuesta al cliente más de 10 s.
			Timeout: 10 * time.Second,
		},
	}
}

type webhookPayload struct {
	Kind      string `json:"kind"`
	TenantID  string `json:"tenant_id"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type webhookError struct {
	Error string `json:"error"`
}

// Send entrega una notificación al webhook.
func (n *WebhookNotifier) Send(ctx context.Context, msg ports.Notification) error {
	if n.url == "" {
		return fmt.Errorf("notify: NOTIFY_WEBHOOK_URL no configurado")
	}

	body, err := json.Marshal(webhookPayload{
		Kind:      msg.Kind,
		TenantID:  msg.TenantID,
		Recipient: msg.Recipient,
		Subject:   msg.Subject,
		Body:      msg.Body,
	})
	if err != nil {
		return fmt.Errorf("notify: serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: crear HTTP request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	if n.token != "" {
		req.Header.Set("authorization", "Bearer "+n.token)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("notify: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("notify: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		rawBody, _ := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
		var errResp webhookError
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != "" {
			return fmt.Errorf("notify: webhook HTTP %d: %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("notify: webhook HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	return nil
}
