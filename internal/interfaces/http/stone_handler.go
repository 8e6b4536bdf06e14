package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/stone"
)

// StoneHandler catálogo de piedras: vista pública (sin sesión) y CRUD del
// admin del tenant.
type StoneHandler struct {
	uc *stone.UseCase
}

// NewStoneHandler construye el handler del catálogo.
func NewStoneHandler(uc *stone.UseCase) *StoneHandler {
	return &StoneHandler{uc: uc}
}

// ListPublic godoc
// @Summary      Catálogo público del negocio (solo piedras activas)
// @Tags         stones
// @Produce      json
// @Param        locale  query  string  false  "idioma de los nombres"
// @Param        limit   query  int     false  "máximo de filas (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.StoneResponse
// @Router       /api/stones [get]
func (h *StoneHandler) ListPublic(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	t := GetTenant(c)
	out, err := h.uc.ListPublic(c.Context(), t.ID, requestLocale(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdminList godoc
// @Summary      Catálogo completo, incluidas piedras desactivadas
// @Tags         admin-stones
// @Produce      json
// @Success      200  {array}  dto.StoneResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/stones [get]
func (h *StoneHandler) AdminList(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.AdminList(c.Context(), GetPrincipal(c), requestLocale(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Alta de una piedra en el catálogo
// @Tags         admin-stones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoneRequest  true  "marca, tipo, nombres por idioma, precio"
// @Success      201   {object}  dto.StoneResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/stones [post]
func (h *StoneHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), requestLocale(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Modificar una piedra
// @Tags         admin-stones
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "id de la piedra"
// @Param        body  body  dto.UpdateStoneRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.StoneResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/stones/{id} [patch]
func (h *StoneHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), requestLocale(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar una piedra (baja en blando)
// @Tags         admin-stones
// @Param        id  path  string  true  "id de la piedra"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/stones/{id} [delete]
func (h *StoneHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), GetPrincipal(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
