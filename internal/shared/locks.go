// Package shared holds helpers reused across domain modules.
package shared

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotLockKey is the redis key guarding monthly snapshot recomputation.
// The recompute job is the only ledger writer, so one coarse lock is enough.
const SnapshotLockKey = "ledger:snapshots:lock"

// ErrLockNotHeld indicates a release attempt by a non-owner.
var ErrLockNotHeld = errors.New("shared: lock not held")

// releaseScript deletes the key only when the stored token matches, so an
// expired lock re-acquired by another run is never released by the old owner.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AdvisoryLock is a best-effort distributed lock backed by redis SET NX.
type AdvisoryLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAdvisoryLock constructs an AdvisoryLock with the given TTL.
func NewAdvisoryLock(client *redis.Client, ttl time.Duration) *AdvisoryLock {
	return &AdvisoryLock{client: client, ttl: ttl}
}

// Acquire attempts to take the lock, returning false when another holder owns it.
// Without a redis client the lock degrades to a no-op grant for single-process runs.
func (l *AdvisoryLock) Acquire(ctx context.Context, key, token string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}
	return l.client.SetNX(ctx, key, token, l.ttl).Result()
}

// Release frees the lock when token still owns it.
func (l *AdvisoryLock) Release(ctx context.Context, key, token string) error {
	if l == nil || l.client == nil {
		return nil
	}
	res, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
	if err != nil {
		return err
	}
	if res == 0 {
		return ErrLockNotHeld
	}
	return nil
}
