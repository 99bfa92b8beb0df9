package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"grantdocs/docs"
	"grantdocs/internal/config"
	"grantdocs/internal/database"
	"grantdocs/internal/database/migration"
	handlers "grantdocs/internal/http/handler"
	"grantdocs/internal/http/middleware"
	"grantdocs/internal/logging"
	"grantdocs/internal/otel"
	"grantdocs/internal/repository/postgres"
	"grantdocs/internal/service"
	"grantdocs/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Grant Documents API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("server_exited", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run wires the API and serves until ctx is cancelled. Every resource opened
// here is released before it returns, including on startup failures.
func run(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) error {
	shutdownTracing, err := otel.Init(ctx, "grantdocs", log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	// Initialize repositories and services
	fileRepo := postgres.NewFilePostgres(db)
	lookupRepo := postgres.NewLookupPostgres(db)
	syncLogRepo := postgres.NewSyncLogPostgres(db)
	reportRepo := postgres.NewReportPostgres(db)

	svc := handlers.Services{
		Files:    service.NewFileService(objStore, fileRepo, lookupRepo, syncLogRepo, log, metrics),
		Lookups:  service.NewLookupService(lookupRepo),
		Reports:  service.NewReportService(reportRepo, lookupRepo),
		SyncLogs: service.NewSyncLogService(syncLogRepo),
	}

	// The seeded lookup tables must match the options the uploader offers.
	if err := svc.Lookups.VerifyCatalog(ctx); err != nil {
		return fmt.Errorf("catalog mismatch: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB << 20,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(prom.Handler())
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, db, svc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	listenErr := make(chan error, 1)
	go func() {
		log.Info("server_started", zap.String("addr", addr))
		listenErr <- app.Listen(addr)
	}()

	var serveErr error
	select {
	case serveErr = <-listenErr:
	case <-ctx.Done():
		log.Info("server_stopping")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", zap.Error(err))
	}
	if serveErr != nil {
		return fmt.Errorf("listen %s: %w", addr, serveErr)
	}
	return nil
}
