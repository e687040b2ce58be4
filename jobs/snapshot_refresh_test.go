package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline-erp/frostline/internal/shared"
)

type fakeRecomputer struct {
	months int
	err    error
	calls  int
	upTo   time.Time
}

func (f *fakeRecomputer) RecomputeMonthlySnapshots(ctx context.Context, upTo time.Time) (int, error) {
	f.calls++
	f.upTo = upTo
	return f.months, f.err
}

type fakeBumper struct {
	bumps int
}

func (f *fakeBumper) Bump(ctx context.Context) error {
	f.bumps++
	return nil
}

func refreshTask(t *testing.T, payload SnapshotRefreshPayload) *asynq.Task {
	t.Helper()
	task, err := NewSnapshotRefreshTask(payload)
	require.NoError(t, err)
	return task
}

func TestSnapshotRefreshRunsAndReleasesLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	lock := shared.NewAdvisoryLock(client, time.Minute)

	rec := &fakeRecomputer{months: 7}
	bumper := &fakeBumper{}
	handler := NewSnapshotRefresher(rec, lock, bumper, nil, nil)

	task := refreshTask(t, SnapshotRefreshPayload{RunID: "run-1", UpTo: "2025-05-31"})
	require.NoError(t, handler.Handle(context.Background(), task))

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC), rec.upTo)
	assert.Equal(t, 1, bumper.bumps)
	assert.False(t, mr.Exists(shared.SnapshotLockKey))
}

func TestSnapshotRefreshSkipsWhenLockHeld(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	lock := shared.NewAdvisoryLock(client, time.Minute)

	held, err := lock.Acquire(context.Background(), shared.SnapshotLockKey, "other-run")
	require.NoError(t, err)
	require.True(t, held)

	rec := &fakeRecomputer{}
	handler := NewSnapshotRefresher(rec, lock, nil, nil, nil)

	task := refreshTask(t, SnapshotRefreshPayload{RunID: "run-2"})
	require.NoError(t, handler.Handle(context.Background(), task))

	assert.Zero(t, rec.calls)
	// the other holder keeps the lock
	assert.True(t, mr.Exists(shared.SnapshotLockKey))
}

func TestSnapshotRefreshPropagatesRecomputeError(t *testing.T) {
	rec := &fakeRecomputer{err: errors.New("boom")}
	handler := NewSnapshotRefresher(rec, nil, nil, nil, nil)

	task := refreshTask(t, SnapshotRefreshPayload{RunID: "run-3"})
	err := handler.Handle(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestSnapshotRefreshRejectsMalformedPayload(t *testing.T) {
	handler := NewSnapshotRefresher(&fakeRecomputer{}, nil, nil, nil, nil)

	task := asynq.NewTask(TaskTypeSnapshotRefresh, []byte("{not json"))
	err := handler.Handle(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSnapshotRefreshRejectsBadDate(t *testing.T) {
	handler := NewSnapshotRefresher(&fakeRecomputer{}, nil, nil, nil, nil)

	payload, err := json.Marshal(SnapshotRefreshPayload{RunID: "run-4", UpTo: "May 2025"})
	require.NoError(t, err)
	task := asynq.NewTask(TaskTypeSnapshotRefresh, payload)
	require.ErrorIs(t, handler.Handle(context.Background(), task), asynq.SkipRetry)
}
