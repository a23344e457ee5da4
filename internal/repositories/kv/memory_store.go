package kv

import (
	"context"
	"sync"

	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
)

// MemoryStore is a process-local KeyValueStore. It backs tests and the "memory" storage driver.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ portsrepo.KeyValueStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
