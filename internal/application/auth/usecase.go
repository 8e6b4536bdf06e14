package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/guard"
	"github.com/jhoicas/marmolia-api/internal/application/ports"
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
	"github.com/jhoicas/marmolia-api/pkg/logger"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// UseCase registro y login de los tres tipos de principal. El login de
// cliente es email+PIN; los admins usan email+password. Cada login emite la
// credencial en su propio namespace de firma.
type UseCase struct {
	customers      repository.CustomerRepository
	tenantAdmins   repository.TenantAdminRepository
	platformAdmins repository.PlatformAdminRepository
	sessions       *session.Manager
	notifier       ports.Notifier
	log            *logger.Logger
	production     bool
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	customers repository.CustomerRepository,
	tenantAdmins repository.TenantAdminRepository,
	platformAdmins repository.PlatformAdminRepository,
	sessions *session.Manager,
	notifier ports.Notifier,
	log *logger.Logger,
	production bool,
) *UseCase {
	return &UseCase{
		customers:      customers,
		tenantAdmins:   tenantAdmins,
		platformAdmins: platformAdmins,
		sessions:       sessions,
		notifier:       notifier,
		log:            log,
		production:     production,
	}
}

// RegisterCustomer crea un cliente del tenant con un PIN de 6 dígitos generado
// en el servidor (bcrypt en reposo) y el saldo inicial de créditos. El PIN se
// envía por el notificador; fuera de producción también se devuelve en la
// respuesta para pruebas locales.
func (uc *UseCase) RegisterCustomer(ctx context.Context, tenantID string, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if in.Username == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.customers.GetByEmail(ctx, tenantID, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	pin, err := generatePIN()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Username:      in.Username,
		Email:         in.Email,
		Phone:         in.Phone,
		PINHash:       string(hash),
		CreditBalance: entity.DefaultCreditBalance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	// Best-effort: un fallo del correo no revierte el registro.
	if err := uc.notifier.Send(ctx, ports.Notification{
		Kind:      ports.NotifyRegistrationPIN,
		TenantID:  tenantID,
		Recipient: customer.Email,
		Subject:   "Tu PIN de acceso",
		Body:      fmt.Sprintf("Hola %s, tu PIN de acceso es %s.", customer.Username, pin),
	}); err != nil {
		uc.log.Warn().Err(err).Str("customer_id", customer.ID).Msg("no se pudo enviar el PIN por correo")
	}

	out := &dto.RegisterResponse{Customer: *toCustomerResponse(customer)}
	if !uc.production {
		out.PIN = pin
	}
	return out, nil
}

// LoginCustomer verifica email+PIN dentro del tenant y emite la sesión de
// cliente (7 días). Email desconocido y PIN incorrecto responden igual.
func (uc *UseCase) LoginCustomer(ctx context.Context, tenantID string, in dto.CustomerLoginRequest) (*dto.LoginResponse, error) {
	customer, err := uc.customers.GetByEmail(ctx, tenantID, in.Email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PINHash), []byte(in.PIN)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, exp, err := uc.sessions.Issue(session.ClassCustomer, customer.ID, customer.Email, "", customer.TenantID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Customer:  toCustomerResponse(customer),
	}, nil
}

// LoginTenantAdmin verifica email+password del admin del tenant y emite la
// sesión tenant_admin (24 h).
func (uc *UseCase) LoginTenantAdmin(ctx context.Context, tenantID string, in dto.AdminLoginRequest) (*dto.LoginResponse, error) {
	admin, err := uc.tenantAdmins.GetByEmail(ctx, tenantID, in.Email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, exp, err := uc.sessions.Issue(session.ClassTenantAdmin, admin.ID, admin.Email, session.RoleTenantAdmin, admin.TenantID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Admin: &dto.AdminResponse{
			ID:       admin.ID,
			TenantID: admin.TenantID,
			Email:    admin.Email,
			Name:     admin.Name,
			Role:     entity.RoleTenantAdmin,
		},
	}, nil
}

// LoginPlatformAdmin verifica el admin global y emite la sesión super_admin
// (24 h, sin tenant).
func (uc *UseCase) LoginPlatformAdmin(ctx context.Context, in dto.AdminLoginRequest) (*dto.LoginResponse, error) {
	admin, err := uc.platformAdmins.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, exp, err := uc.sessions.Issue(session.ClassPlatformAdmin, admin.ID, admin.Email, session.RoleSuperAdmin, "")
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Admin: &dto.AdminResponse{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  entity.RoleSuperAdmin,
		},
	}, nil
}

// GetCustomer perfil del cliente autenticado (re-consulta la base: la sesión
// no garantiza existencia).
func (uc *UseCase) GetCustomer(ctx context.Context, tenantID, customerID string) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers clientes del tenant del admin, con su saldo de créditos.
func (uc *UseCase) ListCustomers(ctx context.Context, p guard.Principal, limit, offset int) ([]*dto.CustomerResponse, error) {
	if p.Class != session.ClassTenantAdmin {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.customers.ListByTenant(ctx, p.TenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// generatePIN PIN de 6 dígitos con crypto/rand (con ceros a la izquierda).
func generatePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:            c.ID,
		TenantID:      c.TenantID,
		Username:      c.Username,
		Email:         c.Email,
		Phone:         c.Phone,
		CreditBalance: c.CreditBalance.StringFixed(2),
		CreatedAt:     c.CreatedAt,
	}
}
