package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ports"
)

// DefaultKeyPrefix namespaces ledger keys in a shared Redis database
const DefaultKeyPrefix = "cardwatch:"

// Config holds the connection settings for the Redis ledger
type Config struct {
	Addr      string
	DB        int
	KeyPrefix string
	Password  string
}

// Store implements ports.KeyValueStore on top of Redis.
// Keys never expire.
type Store struct {
	client *redis.Client
	prefix string
}

var _ ports.KeyValueStore = (*Store)(nil)

// New connects to Redis and verifies the connection
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	logging.Logger.Debug("Redis ledger connected", "addr", cfg.Addr, "db", cfg.DB, "prefix", prefix)

	return &Store{client: client, prefix: prefix}, nil
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Get implements KeyValueStore.Get
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
		}
		return "", fmt.Errorf("failed to read ledger entry %s: %w", key, err)
	}
	return value, nil
}

// Has implements KeyValueStore.Has
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check ledger entry %s: %w", key, err)
	}
	return n > 0, nil
}

// Set implements KeyValueStore.Set
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write ledger entry %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis client
func (s *Store) Close() error {
	return s.client.Close()
}
