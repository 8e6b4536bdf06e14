package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marmolia-api/internal/application/auth"
	"github.com/jhoicas/marmolia-api/internal/application/dto"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// AuthHandler maneja registro, los tres logins y el logout. Cada clase de
// sesión viaja en su propia cookie HttpOnly; el token también va en el cuerpo
// para clientes no-navegador.
type AuthHandler struct {
	uc     *auth.UseCase
	secure bool // Secure en cookies solo en producción (localhost es http)
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, secure bool) *AuthHandler {
	return &AuthHandler{uc: uc, secure: secure}
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, class session.Class, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     class.CookieName(),
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx, class session.Class) {
	c.Cookie(&fiber.Cookie{
		Name:     class.CookieName(),
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// Register godoc
// @Summary      Registrar cliente del negocio
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, phone"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t := GetTenant(c)
	out, err := h.uc.RegisterCustomer(c.Context(), t.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CustomerLogin godoc
// @Summary      Login de cliente (email + PIN)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerLoginRequest  true  "email, pin"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) CustomerLogin(c *fiber.Ctx) error {
	var in dto.CustomerLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t := GetTenant(c)
	out, err := h.uc.LoginCustomer(c.Context(), t.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookie(c, session.ClassCustomer, out.Token, out.ExpiresAt)
	return c.JSON(out)
}

// TenantAdminLogin godoc
// @Summary      Login de admin del negocio (email + password)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/admin/auth/login [post]
func (h *AuthHandler) TenantAdminLogin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t := GetTenant(c)
	out, err := h.uc.LoginTenantAdmin(c.Context(), t.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookie(c, session.ClassTenantAdmin, out.Token, out.ExpiresAt)
	return c.JSON(out)
}

// PlatformAdminLogin godoc
// @Summary      Login de admin de plataforma
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/platform/auth/login [post]
func (h *AuthHandler) PlatformAdminLogin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.LoginPlatformAdmin(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	h.setSessionCookie(c, session.ClassPlatformAdmin, out.Token, out.ExpiresAt)
	return c.JSON(out)
}

// Logout limpia la cookie de la clase indicada. No invalida el token del lado
// del servidor: las sesiones son stateless y expiran solas.
func (h *AuthHandler) Logout(class session.Class) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h.clearSessionCookie(c, class)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me godoc
// @Summary      Perfil del cliente autenticado
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.CustomerResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	out, err := h.uc.GetCustomer(c.Context(), p.TenantID, p.PrincipalID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCustomers godoc
// @Summary      Clientes del negocio con su saldo (admin)
// @Tags         auth
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.CustomerResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/customers [get]
func (h *AuthHandler) ListCustomers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.ListCustomers(c.Context(), GetPrincipal(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
