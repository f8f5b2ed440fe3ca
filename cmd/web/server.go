package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/background"
	"archiveweb/internal/config"
	"archiveweb/internal/database"
	"archiveweb/internal/database/migration"
	handlers "archiveweb/internal/http/handler"
	"archiveweb/internal/http/middleware"
	"archiveweb/internal/http/view"
	"archiveweb/internal/logging"
	"archiveweb/internal/otel"
	"archiveweb/internal/repository"
	"archiveweb/internal/repository/memory"
	"archiveweb/internal/repository/postgres"
	"archiveweb/internal/service"
	"archiveweb/internal/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	// counterTimeout bounds the fire-and-forget view and download counters.
	counterTimeout = 5 * time.Second
)

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	shutdownTracer, err := otel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	db, reports, err := openReports(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	apiMetrics, err := apiclient.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register api metrics: %w", err)
	}
	client, err := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout()),
		apiclient.WithMetrics(apiMetrics),
	)
	if err != nil {
		return err
	}

	files, err := openFiles(ctx, cfg)
	if err != nil {
		return err
	}

	runner := background.NewRunner(logger, counterTimeout)

	app := fiber.New(fiber.Config{
		AppName:               "archiveweb",
		Views:                 view.New(),
		ErrorHandler:          handlers.ErrorHandler(logger),
		BodyLimit:             cfg.Upload.MaxBytes(),
		DisableStartupMessage: true,
	})

	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	app.Use(fiberrecover.New())
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(httpMetrics.Handler())
	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	health := []handlers.Pinger{handlers.PingFunc(client.Ping)}
	if db != nil {
		health = append(health, db)
	}
	handlers.RegisterRoutes(app, handlers.Deps{
		API:       client,
		Documents: service.NewDocumentService(client, runner, logger),
		Uploads:   service.NewUploadService(client, logger),
		Reports:   service.NewReportService(reports, logger),
		Accounts:  service.NewAccountService(client, logger),
		Files:     files,
		Config:    cfg,
		Logger:    logger,
		Health:    health,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("api", client.BaseURL()),
			zap.String("files", cfg.FilesSource),
			zap.Bool("database", db != nil),
		)
		return app.Listen(addr)
	})
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("shutdown signal", zap.String("signal", sig.String()))
		case <-gctx.Done():
		}

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(sctx)
	})

	err = g.Wait()
	runner.Wait()
	if err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// openReports picks the report store: Postgres when a database is configured, memory otherwise.
func openReports(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*sql.DB, repository.ReportRepository, error) {
	db, err := database.Open(ctx, cfg.Database)
	if errors.Is(err, database.ErrDisabled) {
		logger.Warn("DB_HOST not set, reports are kept in memory")
		return nil, memory.NewReportMemory(), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, postgres.NewReportPostgres(db), nil
}

func openFiles(ctx context.Context, cfg *config.AppConfig) (storage.FileStore, error) {
	if cfg.FilesSource == config.FilesSourceMinIO {
		store, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("init object storage: %w", err)
		}
		return store, nil
	}
	return storage.NewBackend(cfg.API.BaseURL, nil)
}
