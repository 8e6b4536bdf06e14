package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/guard"
	"github.com/jhoicas/marmolia-api/internal/application/ports"
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
	"github.com/jhoicas/marmolia-api/pkg/logger"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// UseCase ciclo de vida de pedidos: creación por el cliente, avance de estado
// y cotización por el admin del tenant. Tenant y cliente de un pedido son
// inmutables después de crear.
type UseCase struct {
	orders       repository.OrderRepository
	stones       repository.StoneRepository
	customers    repository.CustomerRepository
	tenantAdmins repository.TenantAdminRepository
	tenants      repository.TenantRepository
	credits      repository.CreditRepository
	notifier     ports.Notifier
	pdf          ports.QuotePDFGenerator
	log          *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	orders repository.OrderRepository,
	stones repository.StoneRepository,
	customers repository.CustomerRepository,
	tenantAdmins repository.TenantAdminRepository,
	tenants repository.TenantRepository,
	credits repository.CreditRepository,
	notifier ports.Notifier,
	pdf ports.QuotePDFGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		orders:       orders,
		stones:       stones,
		customers:    customers,
		tenantAdmins: tenantAdmins,
		tenants:      tenants,
		credits:      credits,
		notifier:     notifier,
		pdf:          pdf,
		log:          log,
	}
}

// Create crea una solicitud de cotización en pending_quote. Exige piedra de
// catálogo o descripción libre, y un plazo de la enumeración fija. Dispara
// dos notificaciones best-effort (cliente y admin del tenant): su fallo se
// registra y jamás revierte la creación.
func (uc *UseCase) Create(ctx context.Context, p guard.Principal, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if p.Class != session.ClassCustomer {
		return nil, domain.ErrForbidden
	}
	if in.StoneID == "" && in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidTimeline(in.Timeline) {
		return nil, domain.ErrInvalidInput
	}
	if in.StoneID != "" {
		// La piedra debe existir en el tenant de la sesión; un id ajeno se
		// comporta como inexistente.
		stone, err := uc.stones.GetByID(ctx, p.TenantID, in.StoneID)
		if err != nil {
			return nil, err
		}
		if stone == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	o := &entity.Order{
		ID:          uuid.New().String(),
		TenantID:    p.TenantID,
		CustomerID:  p.PrincipalID,
		StoneID:     in.StoneID,
		Description: in.Description,
		Timeline:    in.Timeline,
		Budget:      in.Budget,
		Status:      entity.OrderPendingQuote,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.notifyCreated(ctx, o)

	return toOrderResponse(o), nil
}

// notifyCreated envía los dos avisos de creación. Best-effort: solo log en fallo.
func (uc *UseCase) notifyCreated(ctx context.Context, o *entity.Order) {
	customer, err := uc.customers.GetByID(ctx, o.TenantID, o.CustomerID)
	if err != nil || customer == nil {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("no se pudo cargar el cliente para notificar")
	} else {
		if err := uc.notifier.Send(ctx, ports.Notification{
			Kind:      ports.NotifyOrderCreatedCustomer,
			TenantID:  o.TenantID,
			Recipient: customer.Email,
			Subject:   "Recibimos tu solicitud de cotización",
			Body:      fmt.Sprintf("Hola %s, tu solicitud %s quedó registrada. Te avisamos cuando esté cotizada.", customer.Username, o.ID),
		}); err != nil {
			uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("notificación al cliente falló")
		}
	}

	admins, err := uc.tenantAdmins.ListByTenant(ctx, o.TenantID)
	if err != nil || len(admins) == 0 {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("no hay admin de tenant para notificar")
		return
	}
	if err := uc.notifier.Send(ctx, ports.Notification{
		Kind:      ports.NotifyOrderCreatedAdmin,
		TenantID:  o.TenantID,
		Recipient: admins[0].Email,
		Subject:   "Nueva solicitud de cotización",
		Body:      fmt.Sprintf("Hay una nueva solicitud de cotización (%s) pendiente.", o.ID),
	}); err != nil {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("notificación al admin falló")
	}
}

// Get devuelve un pedido aplicando la regla de autorización: el cliente solo
// ve los suyos; el admin del tenant cualquiera de su tenant; tenant o dueño
// ajenos responden NotFound.
func (uc *UseCase) Get(ctx context.Context, p guard.Principal, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.fetchAuthorized(ctx, p, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// fetchAuthorized guard compartido: carga el pedido acotado al tenant de la
// sesión y aplica la regla de tenant/dueño. Se invoca al inicio de TODA
// operación sobre un pedido existente.
func (uc *UseCase) fetchAuthorized(ctx context.Context, p guard.Principal, orderID string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, p.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if err := guard.Authorize(p, guard.Resource{TenantID: o.TenantID, OwnerID: o.CustomerID}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListMine pedidos del cliente autenticado.
func (uc *UseCase) ListMine(ctx context.Context, p guard.Principal, limit, offset int) ([]*dto.OrderResponse, error) {
	if p.Class != session.ClassCustomer {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.orders.ListByCustomer(ctx, p.TenantID, p.PrincipalID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// AdminList listado desnormalizado para el panel del tenant: nombres de
// cliente y piedra resueltos en un único JOIN, nunca una consulta por fila.
func (uc *UseCase) AdminList(ctx context.Context, p guard.Principal, locale string, limit, offset int) ([]*dto.OrderSummaryResponse, error) {
	if p.Class != session.ClassTenantAdmin {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := uc.orders.SummariesByTenant(ctx, p.TenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, &dto.OrderSummaryResponse{
			OrderResponse: *toOrderResponse(&row.Order),
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
			StoneName:     row.StoneNames.Resolve(locale),
			StoneBrand:    row.StoneBrand,
		})
	}
	return out, nil
}

// AdminUpdate avance de estado y/o precio final por un admin del tenant.
//
// Reglas: la transición debe estar en la tabla (cancelación solo desde
// no-terminales); el precio solo se fija entrando o estando en
// quoted/in_progress/completed; el precio no es monotónico (se puede
// corregir), pero toda actualización estampa updatedAt.
func (uc *UseCase) AdminUpdate(ctx context.Context, p guard.Principal, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if p.Class != session.ClassTenantAdmin {
		return nil, domain.ErrForbidden
	}
	o, err := uc.fetchAuthorized(ctx, p, orderID)
	if err != nil {
		return nil, err
	}
	if in.Status == nil && in.FinalQuotePrice == nil {
		return nil, domain.ErrInvalidInput
	}

	target := o.Status
	if in.Status != nil {
		if !entity.ValidOrderStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		if !entity.CanTransition(o.Status, *in.Status) {
			return nil, domain.ErrInvalidTransition
		}
		target = *in.Status
	}
	if in.FinalQuotePrice != nil {
		if in.FinalQuotePrice.IsNegative() || in.FinalQuotePrice.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		if !entity.StatusAllowsPrice(target) {
			return nil, domain.ErrConflict
		}
		price := in.FinalQuotePrice.Round(2)
		o.FinalQuotePrice = &price
	}
	o.Status = target
	o.UpdatedAt = time.Now()

	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// QuotePDF genera la representación gráfica de la cotización. Requiere que el
// pedido ya tenga precio final.
func (uc *UseCase) QuotePDF(ctx context.Context, p guard.Principal, orderID string) ([]byte, error) {
	o, err := uc.fetchAuthorized(ctx, p, orderID)
	if err != nil {
		return nil, err
	}
	if o.FinalQuotePrice == nil {
		return nil, domain.ErrConflict
	}
	tenant, err := uc.tenants.GetByID(ctx, o.TenantID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, o.TenantID, o.CustomerID)
	if err != nil {
		return nil, err
	}
	var stone *entity.Stone
	if o.StoneID != "" {
		if stone, err = uc.stones.GetByID(ctx, o.TenantID, o.StoneID); err != nil {
			return nil, err
		}
	}
	return uc.pdf.GenerateQuotePDF(ctx, tenant, o, customer, stone)
}

// Dashboard métricas agregadas del tenant (conteo por estado en una sola
// consulta agrupada).
func (uc *UseCase) Dashboard(ctx context.Context, p guard.Principal) (*dto.DashboardResponse, error) {
	if p.Class != session.ClassTenantAdmin {
		return nil, domain.ErrForbidden
	}
	counts, err := uc.orders.CountByStatus(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	total, err := uc.credits.TotalByTenant(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		OrdersByStatus:     counts,
		OutstandingCredits: total.StringFixed(2),
	}, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	out := &dto.OrderResponse{
		ID:          o.ID,
		TenantID:    o.TenantID,
		CustomerID:  o.CustomerID,
		StoneID:     o.StoneID,
		Description: o.Description,
		Timeline:    o.Timeline,
		Budget:      o.Budget.StringFixed(2),
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.FinalQuotePrice != nil {
		out.FinalQuotePrice = o.FinalQuotePrice.StringFixed(2)
	}
	return out
}
