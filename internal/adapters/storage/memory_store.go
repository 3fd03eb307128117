package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/ports"
)

// MemoryStore is a process-local KeyValueStore.
// Used when the ledger database cannot be opened, so the run still renders.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ ports.KeyValueStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get implements KeyValueStore.Get
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
	}
	return value, nil
}

// Has implements KeyValueStore.Has
func (s *MemoryStore) Has(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[key]
	return ok, nil
}

// Set implements KeyValueStore.Set
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return nil
}

// Close implements KeyValueStore.Close
func (s *MemoryStore) Close() error {
	return nil
}
