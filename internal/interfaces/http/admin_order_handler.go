package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/internal/application/order"
)

// AdminOrderHandler panel de pedidos del admin del tenant: listado
// desnormalizado, avance de estado, cotización y PDF.
type AdminOrderHandler struct {
	uc *order.UseCase
}

// NewAdminOrderHandler construye el handler.
func NewAdminOrderHandler(uc *order.UseCase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

// locale del listado: query ?locale=, si no Accept-Language, si no "en".
func requestLocale(c *fiber.Ctx) string {
	if l := c.Query("locale"); l != "" {
		return l
	}
	if l := c.AcceptsLanguages("es", "en", "pt"); l != "" {
		return l
	}
	return "en"
}

// List godoc
// @Summary      Listar pedidos del negocio (panel admin)
// @Tags         admin-orders
// @Produce      json
// @Param        locale  query  string  false  "idioma de los nombres de piedra"
// @Param        limit   query  int     false  "máximo de filas (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.OrderSummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/orders [get]
func (h *AdminOrderHandler) List(c *fiber.Ctx) error {
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

// Get godoc
// @Summary      Ver cualquier pedido del negocio
// @Tags         admin-orders
// @Produce      json
// @Param        id  path  string  true  "id del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id} [get]
func (h *AdminOrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Avanzar estado y/o fijar precio cotizado
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "id del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "status y/o final_quote_price"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id} [patch]
func (h *AdminOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdminUpdate(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// QuotePDF godoc
// @Summary      Descargar la cotización en PDF
// @Tags         admin-orders
// @Produce      application/pdf
// @Param        id  path  string  true  "id del pedido"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/quote.pdf [get]
func (h *AdminOrderHandler) QuotePDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.QuotePDF(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cotizacion-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

// Dashboard godoc
// @Summary      Métricas del negocio (conteos por estado + créditos pendientes)
// @Tags         admin-orders
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/dashboard [get]
func (h *AdminOrderHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
