package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const lockPrefix = "lock:"

// releaseScript deletes the lock only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
}

// NewRedisLocker creates a Locker on top of SET NX PX.
func NewRedisLocker(client *redis.Client) adapter.Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, lockPrefix+key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// The caller's context may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{lockPrefix + key}, token).Err(); err != nil {
			slog.Warn("Failed to release lock", "key", key, "error", err)
		}
	}
	return release, true, nil
}

// memoryLocker is the single-process Locker used when Redis is not configured.
type memoryLocker struct {
	mu    sync.Mutex
	held  map[string]memoryLock
	next  uint64
	clock func() time.Time
}

type memoryLock struct {
	token     uint64
	expiresAt time.Time
}

// NewMemoryLocker creates an in-process Locker.
func NewMemoryLocker() adapter.Locker {
	return &memoryLocker{
		held:  make(map[string]memoryLock),
		clock: time.Now,
	}
}

func (l *memoryLocker) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if current, ok := l.held[key]; ok && now.Before(current.expiresAt) {
		return nil, false, nil
	}

	l.next++
	token := l.next
	l.held[key] = memoryLock{token: token, expiresAt: now.Add(ttl)}

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if current, ok := l.held[key]; ok && current.token == token {
			delete(l.held, key)
		}
	}
	return release, true, nil
}
