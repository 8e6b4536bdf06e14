package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/tenant"
)

// PlatformHandler administración de tenants (solo sesión de plataforma).
type PlatformHandler struct {
	uc *tenant.UseCase
}

// NewPlatformHandler construye el handler de plataforma.
func NewPlatformHandler(uc *tenant.UseCase) *PlatformHandler {
	return &PlatformHandler{uc: uc}
}

// Provision godoc
// @Summary      Aprovisionar un negocio (opcionalmente con su primer admin)
// @Tags         platform
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenantRequest  true  "name, domain, feature_flags, admin"
// @Success      201   {object}  dto.TenantResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/platform/tenants [post]
func (h *PlatformHandler) Provision(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Provision(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar negocios de la plataforma
// @Tags         platform
// @Produce      json
// @Success      200  {array}  dto.TenantResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/platform/tenants [get]
func (h *PlatformHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), GetPrincipal(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Ver un negocio
// @Tags         platform
// @Produce      json
// @Param        id  path  string  true  "id del tenant"
// @Success      200  {object}  dto.TenantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/platform/tenants/{id} [get]
func (h *PlatformHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar un negocio (baja en blando, idempotente)
// @Tags         platform
// @Produce      json
// @Param        id  path  string  true  "id del tenant"
// @Success      200  {object}  dto.TenantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/platform/tenants/{id} [delete]
func (h *PlatformHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateAdmin godoc
// @Summary      Agregar un admin a un negocio existente
// @Tags         platform
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "id del tenant"
// @Param        body  body  dto.CreateTenantAdminRequest true  "email, password, name"
// @Success      201   {object}  dto.AdminResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/platform/tenants/{id}/admins [post]
func (h *PlatformHandler) CreateAdmin(c *fiber.Ctx) error {
	var in dto.CreateTenantAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateAdmin(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
