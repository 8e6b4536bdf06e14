package stone

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/guard"
	"github.com/jhoicas/marmolia-api/internal/domain"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/internal/domain/repository"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// UseCase catálogo de piedras de un tenant. Las bajas son siempre en blando
// para no romper los pedidos históricos que referencian la piedra.
type UseCase struct {
	stones repository.StoneRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(stones repository.StoneRepository) *UseCase {
	return &UseCase{stones: stones}
}

func validStoneType(t string) bool {
	switch t {
	case entity.StoneTypeMarble, entity.StoneTypeGranite, entity.StoneTypeQuartz, entity.StoneTypeOnyx:
		return true
	}
	return false
}

// ListPublic catálogo visible del tenant (solo piedras activas). No requiere
// sesión: el scope lo da el tenant resuelto por dominio.
func (uc *UseCase) ListPublic(ctx context.Context, tenantID, locale string, limit, offset int) ([]*dto.StoneResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.stones.ListByTenant(ctx, tenantID, true, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StoneResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStoneResponse(s, locale))
	}
	return out, nil
}

// AdminList catálogo completo del tenant, incluidas piedras desactivadas.
func (uc *UseCase) AdminList(ctx context.Context, p guard.Principal, locale string, limit, offset int) ([]*dto.StoneResponse, error) {
	if p.Class != session.ClassTenantAdmin {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.stones.ListByTenant(ctx, p.TenantID, false, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StoneResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStoneResponse(s, locale))
	}
	return out, nil
}

// Create alta de una piedra en el catálogo del tenant del admin.
func (uc *UseCase) Create(ctx context.Context, p guard.Principal, locale string, in dto.CreateStoneRequest) (*dto.StoneResponse, error) {
	if p.Class != session.ClassTenantAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Brand == "" || !validStoneType(in.Type) || len(in.Names) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.Price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Stone{
		ID:        uuid.New().String(),
		TenantID:  p.TenantID,
		Brand:     in.Brand,
		Series:    in.Series,
		Type:      in.Type,
		Names:     entity.LocalizedName(in.Names),
		Price:     in.Price.Round(2),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.stones.Create(ctx, s); err != nil {
		return nil, err
	}
	return toStoneResponse(s, locale), nil
}

// Update cambios parciales de una piedra. Un id de otro tenant responde
// NotFound (el repo ya acota por tenant; el guard lo reafirma).
func (uc *UseCase) Update(ctx context.Context, p guard.Principal, locale, id string, in dto.UpdateStoneRequest) (*dto.StoneResponse, error) {
	if p.Class != session.ClassTenantAdmin {
		return nil, domain.ErrForbidden
	}
	s, err := uc.stones.GetByID(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if err := guard.Authorize(p, guard.Resource{TenantID: s.TenantID}); err != nil {
		return nil, err
	}

	if in.Brand != nil {
		s.Brand = *in.Brand
	}
	if in.Series != nil {
		s.Series = *in.Series
	}
	if in.Type != nil {
		if !validStoneType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		s.Type = *in.Type
	}
	if in.Names != nil {
		if len(*in.Names) == 0 {
			return nil, domain.ErrInvalidInput
		}
		s.Names = entity.LocalizedName(*in.Names)
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		s.Price = in.Price.Round(2)
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	s.UpdatedAt = time.Now()

	if err := uc.stones.Update(ctx, s); err != nil {
		return nil, err
	}
	return toStoneResponse(s, locale), nil
}

// Deactivate baja en blando. Idempotente; id ajeno → NotFound.
func (uc *UseCase) Deactivate(ctx context.Context, p guard.Principal, id string) error {
	if p.Class != session.ClassTenantAdmin {
		return domain.ErrForbidden
	}
	ok, err := uc.stones.Deactivate(ctx, p.TenantID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func toStoneResponse(s *entity.Stone, locale string) *dto.StoneResponse {
	if s == nil {
		return nil
	}
	return &dto.StoneResponse{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Brand:     s.Brand,
		Series:    s.Series,
		Type:      s.Type,
		Name:      s.Names.Resolve(locale),
		Names:     map[string]string(s.Names),
		Price:     s.Price.StringFixed(2),
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
