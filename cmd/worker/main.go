package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/pickdesk/pickdesk/internal/app"
	"github.com/pickdesk/pickdesk/internal/catalog"
	jobmetrics "github.com/pickdesk/pickdesk/internal/jobs"
	"github.com/pickdesk/pickdesk/internal/orders"
	"github.com/pickdesk/pickdesk/internal/platform/db"
	"github.com/pickdesk/pickdesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	catalogRepo := catalog.NewRepository(pool)
	orderRepo := orders.NewRepository(pool, catalogRepo)

	metrics := jobmetrics.NewMetrics(nil)
	orderUpdated := jobs.NewOrderUpdatedJob(redisClient, metrics, logger)
	lowStock := jobs.NewLowStockScanJob(catalogRepo, metrics, logger)
	staleSweep := jobs.NewStaleOrderSweepJob(orderRepo, metrics, logger)

	staleTask, err := jobs.NewStaleOrderSweepTask(jobs.StaleOrderSweepPayload{OlderThanHours: 4})
	if err != nil {
		logger.Error("build stale sweep task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeOrderUpdated, Handler: orderUpdated.Handle},
			{Type: jobs.TaskTypeLowStockScan, Handler: lowStock.Handle},
			{Type: jobs.TaskTypeStaleOrderSweep, Handler: staleSweep.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 * * * *", Task: jobs.NewLowStockScanTask()},
			{Spec: "30 */4 * * *", Task: staleTask},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started", slog.String("redis", cfg.RedisAddr))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker exited", slog.Any("error", err))
		os.Exit(1)
	}
}
