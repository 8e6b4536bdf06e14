package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marmolia-api/internal/application/auth"
	"github.com/jhoicas/marmolia-api/internal/application/credit"
	"github.com/jhoicas/marmolia-api/internal/application/order"
	"github.com/jhoicas/marmolia-api/internal/application/stone"
	"github.com/jhoicas/marmolia-api/internal/application/tenant"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
	"github.com/jhoicas/marmolia-api/pkg/metrics"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver  *tenant.Resolver
	Sessions  *session.Manager
	AuthUC    *auth.UseCase
	OrderUC   *order.UseCase
	CreditUC  *credit.UseCase
	StoneUC   *stone.UseCase
	TenantUC  *tenant.UseCase
	Metrics   *metrics.Metrics
	SecureEnv bool // cookies con Secure=true (producción)
}

// Router registra las rutas de la API.
//
// Las rutas de plataforma (/api/platform/...) se montan ANTES del grupo con
// TenantMiddleware: el panel de plataforma no corre bajo el dominio de ningún
// negocio y no debe fallar con TENANT_NOT_FOUND.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureEnv)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Metrics)
	adminOrderHandler := NewAdminOrderHandler(deps.OrderUC)
	creditHandler := NewCreditHandler(deps.CreditUC, deps.Metrics)
	stoneHandler := NewStoneHandler(deps.StoneUC)
	platformHandler := NewPlatformHandler(deps.TenantUC)

	// Plataforma (sin tenant)
	platform := app.Group("/api/platform")
	platform.Post("/auth/login", authHandler.PlatformAdminLogin)
	platform.Post("/auth/logout", authHandler.Logout(session.ClassPlatformAdmin))

	platformProtected := platform.Group("/", SessionMiddleware(deps.Sessions, session.ClassPlatformAdmin))
	platformProtected.Post("/tenants", platformHandler.Provision)
	platformProtected.Get("/tenants", platformHandler.List)
	platformProtected.Get("/tenants/:id", platformHandler.Get)
	platformProtected.Delete("/tenants/:id", platformHandler.Deactivate)
	platformProtected.Post("/tenants/:id/admins", platformHandler.CreateAdmin)

	// Todo lo demás se sirve bajo el dominio de un negocio.
	api := app.Group("/api", TenantMiddleware(deps.Resolver))

	// Auth del cliente final (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.CustomerLogin)
	authGroup.Post("/logout", authHandler.Logout(session.ClassCustomer))

	// Catálogo público de piedras
	api.Get("/stones", RequireFeature(entity.FeatureCatalog), stoneHandler.ListPublic)

	// Rutas del cliente final (sesión de cliente)
	customerSession := SessionMiddleware(deps.Sessions, session.ClassCustomer)
	api.Get("/auth/me", customerSession, authHandler.Me)

	orders := api.Group("/orders", customerSession)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)

	// Créditos del estudio IA (sesión de cliente + flag ai_studio)
	client := api.Group("/client", customerSession, RequireFeature(entity.FeatureAIStudio))
	client.Get("/balance", creditHandler.Balance)
	client.Post("/balance", creditHandler.Debit)

	// Panel del negocio (sesión de administrador del tenant)
	adminAuth := api.Group("/admin/auth")
	adminAuth.Post("/login", authHandler.TenantAdminLogin)
	adminAuth.Post("/logout", authHandler.Logout(session.ClassTenantAdmin))

	admin := api.Group("/admin", SessionMiddleware(deps.Sessions, session.ClassTenantAdmin))
	admin.Get("/dashboard", adminOrderHandler.Dashboard)
	admin.Get("/orders", adminOrderHandler.List)
	admin.Get("/orders/:id", adminOrderHandler.Get)
	admin.Patch("/orders/:id", adminOrderHandler.Update)
	admin.Get("/orders/:id/quote.pdf", RequireFeature(entity.FeatureQuotePDF), adminOrderHandler.QuotePDF)
	admin.Get("/stones", stoneHandler.AdminList)
	admin.Post("/stones", stoneHandler.Create)
	admin.Patch("/stones/:id", stoneHandler.Update)
	admin.Delete("/stones/:id", stoneHandler.Deactivate)
	admin.Get("/customers", authHandler.ListCustomers)
	admin.Post("/customers/:id/credits", creditHandler.AdminCredit)
}
