package kv

import (
	"context"
	"sync"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
)

// NotifyingStore decorates a KeyValueStore and publishes a StorageEvent after every
// successful write or removal made through it.
type NotifyingStore struct {
	inner portsrepo.KeyValueStore

	mu          sync.Mutex
	nextID      int
	subscribers map[int]func(domain.StorageEvent)
}

var _ portsrepo.NotifyingStore = (*NotifyingStore)(nil)

// NewNotifyingStore wraps inner.
func NewNotifyingStore(inner portsrepo.KeyValueStore) *NotifyingStore {
	return &NotifyingStore{
		inner:       inner,
		subscribers: make(map[int]func(domain.StorageEvent)),
	}
}

func (s *NotifyingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, key)
}

func (s *NotifyingStore) Set(ctx context.Context, key string, value string) error {
	old := s.current(ctx, key)
	if err := s.inner.Set(ctx, key, value); err != nil {
		return err
	}
	s.publish(domain.StorageEvent{Key: key, OldValue: old, NewValue: &value})
	return nil
}

func (s *NotifyingStore) Remove(ctx context.Context, key string) error {
	old := s.current(ctx, key)
	if err := s.inner.Remove(ctx, key); err != nil {
		return err
	}
	if old != nil {
		s.publish(domain.StorageEvent{Key: key, OldValue: old})
	}
	return nil
}

// Subscribe registers fn. Callbacks run synchronously on the writer's goroutine.
func (s *NotifyingStore) Subscribe(fn func(domain.StorageEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// current returns the stored value, nil when absent or unreadable.
func (s *NotifyingStore) current(ctx context.Context, key string) *string {
	value, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil
	}
	return &value
}

func (s *NotifyingStore) publish(ev domain.StorageEvent) {
	s.mu.Lock()
	fns := make([]func(domain.StorageEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
