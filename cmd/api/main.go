package main

import (
	"context"
	"os"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"legalapi/internal/config"
	"legalapi/internal/database"
	"legalapi/internal/database/migration"
	handlers "legalapi/internal/http/handler"
	"legalapi/internal/http/middleware"
	"legalapi/internal/logging"
	"legalapi/internal/otel"
	"legalapi/internal/repository/postgres"
	"legalapi/internal/service"
	"legalapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(cfg.Log, os.Stdout)

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		_ = shutdownTracing(context.Background())
	}()

	// PostgreSQL over the pgx stdlib driver, instrumented with otelsql
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Object storage holds the acceptance-evidence snapshots taken on publish
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}
	archive := storage.NewEvidenceArchive(objStore)

	docRepo := postgres.NewDocumentPostgres(db)
	verRepo := postgres.NewVersionPostgres(db)
	accRepo := postgres.NewAcceptancePostgres(db)

	policy := service.NewPolicyEvaluator()
	docSvc := service.NewDocumentService(docRepo, verRepo, accRepo, archive, policy)
	verSvc := service.NewVersionService(verRepo, docRepo)
	accSvc := service.NewAcceptanceService(accRepo, verRepo, docRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMw, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}
	app.Use(promMw.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Resolve the acting account from the trusted gateway headers
	app.Use(middleware.Account())

	handlers.RegisterRoutes(app, db, docSvc, verSvc, accSvc)

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
