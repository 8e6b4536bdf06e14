package ports

import "context"

// Tipos de notificación que emite la aplicación.
const (
	NotifyOrderCreatedCustomer = "order_created_customer"
	NotifyOrderCreatedAdmin    = "order_created_admin"
	NotifyRegistrationPIN      = "registration_pin"
)

// Notification mensaje saliente hacia el colaborador externo de correo.
type Notification struct {
	Kind      string `json:"kind"`
	TenantID  string `json:"tenant_id"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Notifier puerto del colaborador externo de notificaciones.
// Los envíos son best-effort: los casos de uso registran el error y continúan;
// un fallo de notificación jamás revierte la operación principal.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
