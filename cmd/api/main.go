package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/maintenance-engine/internal/api/http"
	"github.com/spec-kit/maintenance-engine/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-engine/internal/config"
	"github.com/spec-kit/maintenance-engine/internal/engine"
	"github.com/spec-kit/maintenance-engine/internal/events"
	"github.com/spec-kit/maintenance-engine/internal/observability"
	"github.com/spec-kit/maintenance-engine/internal/persistence"
	"github.com/spec-kit/maintenance-engine/internal/repository"
	"github.com/spec-kit/maintenance-engine/internal/service"
	"github.com/spec-kit/maintenance-engine/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	var (
		issueRepo     repository.IssueRepository
		staffRepo     repository.StaffRepository
		workOrderRepo repository.WorkOrderRepository
	)
	if pool != nil {
		issueRepo = repository.NewIssueRepository(pool)
		staffRepo = repository.NewStaffRepository(pool)
		workOrderRepo = repository.NewWorkOrderRepository(pool)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	eng := engine.New(engine.Dependencies{
		FacilityID: cfg.Engine.FacilityID,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})

	svc := service.NewMaintenanceService(service.Dependencies{
		Engine:        eng,
		IssueRepo:     issueRepo,
		StaffRepo:     staffRepo,
		WorkOrderRepo: workOrderRepo,
		Cache:         redis,
		Logger:        logger,
		Config:        cfg.Engine,
	})

	if pool != nil {
		if err := svc.WarmCaches(ctx); err != nil {
			logger.Fatal("failed to warm caches", zap.Error(err))
		}
	}

	escalationWorker := worker.NewEscalationWorker(dispatcher, logger)
	escalationWorker.RegisterHandlers()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Issues:    handlers.NewIssuesHandler(svc),
		Staff:     handlers.NewStaffHandler(svc),
		Analytics: handlers.NewAnalyticsHandler(svc, cfg.Engine.FacilityID),
		Cache:     handlers.NewCacheHandler(svc),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
