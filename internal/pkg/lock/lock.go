package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockHeld is returned when another holder owns the key.
var ErrLockHeld = errors.New("lock is held by another request")

// Locker serializes actions on a key across requests and instances.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// releaseScript deletes the key only when it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
	prefix string
}

func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release := func() {
		// Released with a fresh context so a cancelled request still frees the key.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err(); err != nil {
			slog.Warn("Failed to release lock, it will expire on its TTL", "key", fullKey, "error", err)
		}
	}
	return release, nil
}

// LocalLocker is an in-process Locker for single-instance runs and tests.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]localHold
}

type localHold struct {
	token   string
	expires time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]localHold)}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.held[key]; ok && time.Now().Before(h.expires) {
		return nil, ErrLockHeld
	}
	token := uuid.NewString()
	l.held[key] = localHold{token: token, expires: time.Now().Add(ttl)}

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		// A release after expiry must not free a later holder.
		if h, ok := l.held[key]; ok && h.token == token {
			delete(l.held, key)
		}
	}, nil
}
