package dto

import "time"

// RegisterRequest registro de cliente final: el PIN se genera en el servidor
// y se entrega por correo (en desarrollo también en la respuesta).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// RegisterResponse resumen del cliente creado. PIN solo va poblado fuera de
// producción.
type RegisterResponse struct {
	Customer CustomerResponse `json:"customer"`
	PIN      string           `json:"pin,omitempty"`
}

// CustomerLoginRequest login de cliente (email + PIN).
type CustomerLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	PIN   string `json:"pin" validate:"required,len=6"`
}

// AdminLoginRequest login de admin de tenant o de plataforma (email + password).
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CustomerResponse resumen de un cliente (sin PIN hash).
type CustomerResponse struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	CreditBalance string    `json:"credit_balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// AdminResponse resumen de un admin (tenant o plataforma).
type AdminResponse struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id,omitempty"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginResponse sesión emitida. El token también viaja en la cookie de la
// clase correspondiente; se incluye aquí para clientes no-navegador.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	Customer  *CustomerResponse `json:"customer,omitempty"`
	Admin     *AdminResponse    `json:"admin,omitempty"`
}

// CreateTenantAdminRequest alta de un admin para un tenant (solo plataforma).
type CreateTenantAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}
