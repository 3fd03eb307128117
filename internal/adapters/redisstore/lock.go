package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ports"
)

// Lock defaults
const (
	DefaultLockRetry = 25 * time.Millisecond
	DefaultLockTTL   = 30 * time.Second
	DefaultLockWait  = 45 * time.Second
)

// releaseScript deletes the lock only while it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a lease in Redis shared by every host that uses the same ledger.
// The lease expires after its TTL so a crashed holder cannot block others forever.
type Lock struct {
	client *redis.Client
	key    string
	mu     sync.Mutex
	retry  time.Duration
	token  string
	ttl    time.Duration
	wait   time.Duration
}

var _ ports.Locker = (*Lock)(nil)

// LockOption configures a Lock
type LockOption func(*Lock)

// WithLockTTL sets how long the lease lives without being released
func WithLockTTL(ttl time.Duration) LockOption {
	return func(l *Lock) {
		l.ttl = ttl
	}
}

// WithLockWait sets how long Lock keeps retrying before giving up
func WithLockWait(wait time.Duration) LockOption {
	return func(l *Lock) {
		l.wait = wait
	}
}

// NewLock creates a Lock named name in the store's key namespace
func (s *Store) NewLock(name string, opts ...LockOption) *Lock {
	l := &Lock{
		client: s.client,
		key:    s.key(name),
		retry:  DefaultLockRetry,
		ttl:    DefaultLockTTL,
		wait:   DefaultLockWait,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Key returns the Redis key holding the lease
func (l *Lock) Key() string {
	return l.key
}

// Lock blocks until the lease is acquired or the wait time runs out
func (l *Lock) Lock() error {
	l.mu.Lock()

	ctx, cancel := context.WithTimeout(context.Background(), l.wait)
	defer cancel()

	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			l.mu.Unlock()
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("timed out waiting for lock %s", l.key)
			}
			return fmt.Errorf("failed to acquire lock %s: %w", l.key, err)
		}
		if ok {
			l.token = token
			logging.Logger.Debug("Acquired redis lock", "key", l.key, "ttl", l.ttl)
			return nil
		}

		select {
		case <-ctx.Done():
			l.mu.Unlock()
			return fmt.Errorf("timed out waiting for lock %s", l.key)
		case <-time.After(l.retry):
		}
	}
}

// Unlock releases a lease taken by Lock
func (l *Lock) Unlock() error {
	if l.token == "" {
		return fmt.Errorf("lock %s is not held", l.key)
	}
	defer l.mu.Unlock()

	token := l.token
	l.token = ""

	ctx, cancel := context.WithTimeout(context.Background(), l.wait)
	defer cancel()

	released, err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	if released == 0 {
		return fmt.Errorf("lock %s expired before release", l.key)
	}

	logging.Logger.Debug("Released redis lock", "key", l.key)
	return nil
}
