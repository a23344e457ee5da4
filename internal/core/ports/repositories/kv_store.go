package repositories

import (
	"context"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
)

// KeyValueStore is a string-keyed document store. Values are opaque strings, usually JSON.
type KeyValueStore interface {
	// Get returns the value stored under key. The boolean is false when nothing is stored.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// ChangeNotifier delivers change events for keys written through a store.
type ChangeNotifier interface {
	// Subscribe registers fn for every change and returns a function that unregisters it.
	Subscribe(fn func(domain.StorageEvent)) (unsubscribe func())
}

// NotifyingStore is a KeyValueStore that also reports its changes.
type NotifyingStore interface {
	KeyValueStore
	ChangeNotifier
}
