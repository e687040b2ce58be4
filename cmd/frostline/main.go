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
	"github.com/redis/go-redis/v9"

	"github.com/frostline-erp/frostline/internal/accounts"
	"github.com/frostline-erp/frostline/internal/app"
	"github.com/frostline-erp/frostline/internal/ledger"
	"github.com/frostline-erp/frostline/internal/observability"
	"github.com/frostline-erp/frostline/internal/platform/cache"
	"github.com/frostline-erp/frostline/internal/platform/db"
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

	// Statement caching and job submission degrade gracefully without redis.
	var redisClient *redis.Client
	if client, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, statement cache disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	accountsRepo := accounts.NewRepository(pool)
	accountsService := accounts.NewService(accountsRepo)
	accountsHandler := accounts.NewHandler(logger, accountsService)

	ledgerService := ledger.NewService(accountsRepo, ledger.NewVoucherSource(pool), ledger.NewSnapshotStore(pool), logger)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	statementCache := statements.NewCache(redisClient, cfg.StatementCacheTTL)
	if err := statementCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("statement cache invalidation listener", slog.Any("error", err))
	}
	statementsService := statements.NewService(accountsRepo, ledgerService, statementCache, logger, cfg.TaxRate)
	statementsHandler := statements.NewHandler(logger, statementsService)

	var jobHandler *jobs.Handler
	if redisClient != nil {
		redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
		jobsClient, err := jobs.NewClient(redisOpts)
		if err != nil {
			logger.Error("init jobs client", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := jobsClient.Close(); err != nil {
				logger.Warn("jobs client close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(asynq.NewInspector(redisOpts), jobsClient, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AccountsHandler:   accountsHandler,
		LedgerHandler:     ledgerHandler,
		StatementsHandler: statementsHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
