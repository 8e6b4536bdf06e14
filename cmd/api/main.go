package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/marmolia-api/internal/application/auth"
	"github.com/jhoicas/marmolia-api/internal/application/credit"
	"github.com/jhoicas/marmolia-api/internal/application/order"
	"github.com/jhoicas/marmolia-api/internal/application/ports"
	"github.com/jhoicas/marmolia-api/internal/application/stone"
	"github.com/jhoicas/marmolia-api/internal/application/tenant"
	"github.com/jhoicas/marmolia-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/marmolia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/marmolia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/marmolia-api/internal/interfaces/http"
	"github.com/jhoicas/marmolia-api/pkg/config"
	"github.com/jhoicas/marmolia-api/pkg/logger"
	"github.com/jhoicas/marmolia-api/pkg/metrics"
	"github.com/jhoicas/marmolia-api/pkg/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	tenantAdminRepo := postgres.NewTenantAdminRepository(pool)
	platformAdminRepo := postgres.NewPlatformAdminRepository(pool)
	stoneRepo := postgres.NewStoneRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	creditRepo := postgres.NewCreditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sessions, err := session.NewManager(session.Config{
		CustomerSecret:      cfg.Session.CustomerSecret,
		TenantAdminSecret:   cfg.Session.TenantAdminSecret,
		PlatformAdminSecret: cfg.Session.PlatformAdminSecret,
		Issuer:              cfg.Session.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de sesiones")
	}

	// Notificador: webhook de correo si está configurado; si no, a consola
	// (modo dev: el PIN de registro se ve en el log).
	var notifier ports.Notifier
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Token)
	} else {
		notifier = notify.NewLogNotifier(log)
		log.Warn().Msg("NOTIFY_WEBHOOK_URL no definido: notificaciones a consola")
	}

	pdfGenerator := infrapdf.NewMarotoQuoteGenerator()

	resolver := tenant.NewResolver(tenantRepo)
	authUC := auth.NewUseCase(
		customerRepo, tenantAdminRepo, platformAdminRepo,
		sessions, notifier, log, cfg.App.IsProduction(),
	)
	orderUC := order.NewUseCase(
		orderRepo, stoneRepo, customerRepo, tenantAdminRepo, tenantRepo,
		creditRepo, notifier, pdfGenerator, log,
	)
	creditUC := credit.NewUseCase(creditRepo, log)
	stoneUC := stone.NewUseCase(stoneRepo)
	tenantUC := tenant.NewUseCase(tenantRepo, tenantAdminRepo, txRunner)

	mtr := metrics.New(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(mtr))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Marmolia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(mtr.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver:  resolver,
		Sessions:  sessions,
		AuthUC:    authUC,
		OrderUC:   orderUC,
		CreditUC:  creditUC,
		StoneUC:   stoneUC,
		TenantUC:  tenantUC,
		Metrics:   mtr,
		SecureEnv: cfg.App.IsProduction(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
