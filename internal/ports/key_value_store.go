package ports

import "context"

// KeyValueStore is a durable string-keyed store
type KeyValueStore interface {
	// Get returns domain.ErrKeyNotFound when the key is absent
	Get(ctx context.Context, key string) (string, error)
	Has(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
