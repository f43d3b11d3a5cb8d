package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/pickdesk/pickdesk/internal/app"
	"github.com/pickdesk/pickdesk/internal/catalog"
	"github.com/pickdesk/pickdesk/internal/observability"
	"github.com/pickdesk/pickdesk/internal/orders"
	"github.com/pickdesk/pickdesk/internal/picking"
	"github.com/pickdesk/pickdesk/internal/platform/cache"
	"github.com/pickdesk/pickdesk/internal/platform/db"
	"github.com/pickdesk/pickdesk/jobs"
	"github.com/pickdesk/pickdesk/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var catalogRepo catalog.Repository
	var orderRepo orders.Repository
	if cfg.DemoMode {
		memCatalog := catalog.NewMemoryRepository()
		if err := catalog.SeedDemo(memCatalog); err != nil {
			logger.Error("seed catalog", slog.Any("error", err))
			os.Exit(1)
		}
		catalogRepo = memCatalog
		orderRepo = orders.NewMemoryRepository(memCatalog)
		logger.Info("demo mode: serving seeded in-memory data")
	} else {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		catalogRepo = catalog.NewRepository(pool)
		orderRepo = orders.NewRepository(pool, catalogRepo)
	}

	var sessions picking.SessionStore
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, session defaults held in memory", slog.Any("error", err))
		sessions = picking.NewMemorySessionStore()
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		sessions = picking.NewRedisSessionStore(redisClient, cfg.SessionTTL)
	}

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	orderService := orders.NewService(orderRepo, catalogRepo)
	if cfg.DemoMode {
		if err := orders.SeedDemo(ctx, orderService); err != nil {
			logger.Error("seed orders", slog.Any("error", err))
			os.Exit(1)
		}
	}

	resolver := picking.NewResolver(catalogRepo, sessions)
	gate := picking.NewGate(cfg.DecodeErrorThreshold)
	sink := picking.Sinks{picking.LogSink{Logger: logger}, jobsClient}
	controller := picking.NewController(orderRepo, resolver, gate, sink, metrics, logger)

	catalogHandler := catalog.NewHandler(logger, catalog.NewService(catalogRepo))
	ordersHandler := orders.NewHandler(logger, orderService)
	pickingHandler := picking.NewHandler(logger, controller)

	reportHandler, err := report.NewHandler(report.NewClient(cfg.GotenbergURL), orderService, logger)
	if err != nil {
		logger.Error("init report handler", slog.Any("error", err))
		os.Exit(1)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		CatalogHandler: catalogHandler,
		OrdersHandler:  ordersHandler,
		PickingHandler: pickingHandler,
		ReportHandler:  reportHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
