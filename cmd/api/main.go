package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/dulceria-api/docs"
	appanalytics "github.com/jhoicas/dulceria-api/internal/application/analytics"
	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/application/auth"
	"github.com/jhoicas/dulceria-api/internal/application/catalog"
	"github.com/jhoicas/dulceria-api/internal/application/inventory"
	"github.com/jhoicas/dulceria-api/internal/application/report"
	infrapdf "github.com/jhoicas/dulceria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/dulceria-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/dulceria-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/dulceria-api/internal/interfaces/http"
	"github.com/jhoicas/dulceria-api/pkg/config"
	"github.com/jhoicas/dulceria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.Export.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.Export.Timezone).Msg("zona horaria inválida, se usa la local")
		loc = time.Local
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Auditoría asíncrona: los eventos se publican tras el commit y se escriben en segundo plano.
	dispatcher := audit.NewDispatcher(auditRepo, log.Component("audit"), cfg.Audit.Buffer, cfg.Audit.Workers)

	movementUC := inventory.NewMovementUseCase(
		txRunner, movementRepo, productRepo, warehouseRepo, supplierRepo,
		dispatcher, log.Component("ledger"), loc,
	)
	replenishmentUC := inventory.NewReplenishmentUseCase(productRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, movementRepo, loc)

	productUC := catalog.NewProductUseCase(productRepo, categoryRepo, dispatcher, loc)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo, dispatcher)
	warehouseUC := catalog.NewWarehouseUseCase(warehouseRepo, dispatcher)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)

	exportUC := report.NewExportUseCase(productRepo, userRepo, movementRepo, infraxlsx.NewRenderer(), dispatcher, loc)
	kardexUC := report.NewKardexUseCase(productRepo, movementRepo, infrapdf.NewKardexGenerator(cfg.Export.Company), loc)
	auditLogUC := audit.NewLogUseCase(auditRepo, loc)

	throttle := auth.NewThrottle(
		cfg.Login.MaxAttempts,
		time.Duration(cfg.Login.LockMinutes)*time.Minute,
		time.Duration(cfg.Login.WindowMinutes)*time.Minute,
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, throttle, dispatcher, log.Component("auth"))

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepThrottle(sweepCtx, throttle, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dulcería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "audit": dispatcher.Stats()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		MovementUC:    movementUC,
		Replenishment: replenishmentUC,
		DashboardUC:   dashboardUC,
		ProductUC:     productUC,
		SupplierUC:    supplierUC,
		WarehouseUC:   warehouseUC,
		CategoryUC:    categoryUC,
		ExportUC:      exportUC,
		KardexUC:      kardexUC,
		AuditLogUC:    auditLogUC,
		AuditStats:    dispatcher.Stats,
		JWTSecret:     cfg.JWT.Secret,
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

	// Después del HTTP: drena los eventos pendientes antes de cerrar el pool.
	dispatcher.Close()
	stats := dispatcher.Stats()
	log.Info().
		Int64("audit_escritos", stats.Written).
		Int64("audit_descartados", stats.Dropped).
		Int64("audit_fallidos", stats.Failed).
		Msg("aplicación detenida")
}

// sweepThrottle libera periódicamente las IPs cuyo bloqueo o ventana expiró.
func sweepThrottle(ctx context.Context, t *auth.Throttle, log *logger.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := t.Sweep(); n > 0 {
				log.Debug().Int("ips", n).Msg("entradas de login expiradas")
			}
		}
	}
}
