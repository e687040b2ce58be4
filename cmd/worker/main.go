package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/frostline-erp/frostline/internal/accounts"
	"github.com/frostline-erp/frostline/internal/app"
	"github.com/frostline-erp/frostline/internal/ledger"
	"github.com/frostline-erp/frostline/internal/platform/cache"
	"github.com/frostline-erp/frostline/internal/platform/db"
	"github.com/frostline-erp/frostline/internal/shared"
	"github.com/frostline-erp/frostline/internal/statements"
	"github.com/frostline-erp/frostline/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	accountsRepo := accounts.NewRepository(pool)
	ledgerService := ledger.NewService(accountsRepo, ledger.NewVoucherSource(pool), ledger.NewSnapshotStore(pool), logger)

	lock := shared.NewAdvisoryLock(redisClient, cfg.SnapshotLockTTL)
	statementCache := statements.NewCache(redisClient, cfg.StatementCacheTTL)
	refresher := jobs.NewSnapshotRefresher(ledgerService, lock, statementCache, nil, logger)

	cronTask, err := jobs.NewSnapshotRefreshTask(jobs.SnapshotRefreshPayload{})
	if err != nil {
		logger.Error("build snapshot refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeSnapshotRefresh, Handler: refresher.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.SnapshotCron, Task: cronTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
