package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/frostline-erp/frostline/internal/observability"
	"github.com/frostline-erp/frostline/internal/shared"
)

// SnapshotRecomputer is the slice of the ledger service the refresh job
// drives. It returns the number of account-months processed.
type SnapshotRecomputer interface {
	RecomputeMonthlySnapshots(ctx context.Context, upTo time.Time) (int, error)
}

// CacheBumper invalidates cached statement documents after a recompute.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// SnapshotRefresher handles TaskTypeSnapshotRefresh tasks. A redis advisory
// lock keeps recompute runs from overlapping across workers; a run that
// finds the lock taken reports itself skipped and does not retry.
type SnapshotRefresher struct {
	ledger  SnapshotRecomputer
	lock    *shared.AdvisoryLock
	cache   CacheBumper
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewSnapshotRefresher constructs the refresh task handler. lock, cache,
// and metrics may be nil; the job then runs unguarded, without
// invalidation, or unobserved respectively.
func NewSnapshotRefresher(ledger SnapshotRecomputer, lock *shared.AdvisoryLock, cache CacheBumper, metrics *observability.Metrics, logger *slog.Logger) *SnapshotRefresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotRefresher{ledger: ledger, lock: lock, cache: cache, metrics: metrics, logger: logger}
}

// Handle processes one snapshot refresh task.
func (s *SnapshotRefresher) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SnapshotRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	upTo := time.Now().UTC()
	if payload.UpTo != "" {
		parsed, err := time.Parse("2006-01-02", payload.UpTo)
		if err != nil {
			return asynq.SkipRetry
		}
		upTo = parsed
	}
	token := payload.RunID
	if token == "" {
		token = uuid.NewString()
	}

	acquired, err := s.lock.Acquire(ctx, shared.SnapshotLockKey, token)
	if err != nil {
		return err
	}
	if !acquired {
		s.logger.Info("snapshot refresh already running, skipping",
			slog.String("run_id", token))
		s.metrics.ObserveSnapshotRun("skipped", 0)
		return nil
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), shared.SnapshotLockKey, token); err != nil {
			s.logger.Warn("release snapshot lock", slog.Any("error", err))
		}
	}()

	started := time.Now()
	months, err := s.ledger.RecomputeMonthlySnapshots(ctx, upTo)
	if err != nil {
		s.logger.Error("snapshot refresh failed",
			slog.String("run_id", token),
			slog.Int("months", months),
			slog.Any("error", err))
		s.metrics.ObserveSnapshotRun("error", months)
		return err
	}
	s.metrics.ObserveSnapshotRun("success", months)
	s.logger.Info("snapshot refresh complete",
		slog.String("run_id", token),
		slog.Int("months", months),
		slog.Duration("took", time.Since(started)))

	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.logger.Warn("bump statement cache", slog.Any("error", err))
		}
	}
	return nil
}
