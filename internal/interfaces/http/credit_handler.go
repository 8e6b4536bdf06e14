package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marmolia-api/internal/application/credit"
	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/pkg/metrics"
)

// CreditHandler saldo y cobros de créditos IA.
type CreditHandler struct {
	uc  *credit.UseCase
	mtr *metrics.Metrics
}

// NewCreditHandler construye el handler de créditos.
func NewCreditHandler(uc *credit.UseCase, mtr *metrics.Metrics) *CreditHandler {
	return &CreditHandler{uc: uc, mtr: mtr}
}

// Balance godoc
// @Summary      Saldo de créditos del cliente autenticado
// @Tags         credits
// @Produce      json
// @Success      200  {object}  dto.BalanceResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/client/balance [get]
func (h *CreditHandler) Balance(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	out, err := h.uc.GetBalance(c.Context(), p, p.PrincipalID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Debit godoc
// @Summary      Cobrar una operación IA del saldo propio
// @Tags         credits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DebitRequest  true  "action de la tabla de precios, o amount explícito"
// @Success      200   {object}  dto.DebitResponse
// @Failure      402   {object}  dto.InsufficientCreditsResponse
// @Router       /api/client/balance [post]
func (h *CreditHandler) Debit(c *fiber.Ctx) error {
	var in dto.DebitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p := GetPrincipal(c)
	out, err := h.uc.Debit(c.Context(), p, p.PrincipalID, in)
	if err != nil {
		return respondError(c, err)
	}
	if out.Action != "" {
		h.mtr.CreditDebits.WithLabelValues(out.Action).Inc()
	}
	return c.JSON(out)
}

// AdminCredit godoc
// @Summary      Recargar saldo de un cliente (admin del negocio)
// @Tags         credits
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "id del cliente"
// @Param        body  body  dto.CreditRequest  true  "amount a abonar"
// @Success      200   {object}  dto.BalanceResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/customers/{id}/credits [post]
func (h *CreditHandler) AdminCredit(c *fiber.Ctx) error {
	var in dto.CreditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Credit(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
