package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
)

// LedgerStateRepository stores the ledger as one JSON document under StateKey.
// A nil store models an environment without storage: nothing loads and writes are dropped.
type LedgerStateRepository struct {
	store  portsrepo.KeyValueStore
	logger *slog.Logger

	mu sync.Mutex
	// lastWritten is the value this repository last stored (nil after Clear). Change events
	// carrying it originate from this writer and are not reported by Watch.
	lastWritten *string
	written     bool
}

var _ portsrepo.LedgerStateRepositoryFacade = (*LedgerStateRepository)(nil)

func NewLedgerStateRepository(store portsrepo.KeyValueStore, logger *slog.Logger) *LedgerStateRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerStateRepository{store: store, logger: logger}
}

func (r *LedgerStateRepository) Load(ctx context.Context) (*domain.LedgerState, bool) {
	if r.store == nil {
		return nil, false
	}

	raw, ok, err := r.store.Get(ctx, StateKey)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read ledger state", slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	state, err := decodeState(raw)
	if err != nil {
		r.logger.WarnContext(ctx, "Ignoring unreadable ledger state", slog.String("error", err.Error()))
		return nil, false
	}
	return &state, true
}

func (r *LedgerStateRepository) Save(ctx context.Context, state domain.LedgerState) {
	if r.store == nil {
		return
	}

	raw, err := json.Marshal(state)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to encode ledger state", slog.String("error", err.Error()))
		return
	}
	value := string(raw)
	r.remember(&value)

	if err := r.store.Set(ctx, StateKey, value); err != nil {
		r.logger.ErrorContext(ctx, "Failed to save ledger state", slog.String("error", err.Error()))
	}
}

func (r *LedgerStateRepository) Clear(ctx context.Context) {
	if r.store == nil {
		return
	}

	r.remember(nil)
	if err := r.store.Remove(ctx, StateKey); err != nil {
		r.logger.ErrorContext(ctx, "Failed to clear ledger state", slog.String("error", err.Error()))
	}
}

// Watch reports changes of StateKey made by other writers. It is a no-op unless the store
// implements ChangeNotifier. Undecodable values are logged and skipped.
func (r *LedgerStateRepository) Watch(fn func(state *domain.LedgerState)) func() {
	notifier, ok := r.store.(portsrepo.ChangeNotifier)
	if !ok {
		return func() {}
	}

	return notifier.Subscribe(func(ev domain.StorageEvent) {
		if ev.Key != StateKey || r.isOwnWrite(ev.NewValue) {
			return
		}
		if ev.NewValue == nil {
			fn(nil)
			return
		}
		state, err := decodeState(*ev.NewValue)
		if err != nil {
			r.logger.Warn("Ignoring unreadable external ledger state", slog.String("error", err.Error()))
			return
		}
		fn(&state)
	})
}

func (r *LedgerStateRepository) remember(value *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastWritten = value
	r.written = true
}

func (r *LedgerStateRepository) isOwnWrite(value *string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.written {
		return false
	}
	if value == nil || r.lastWritten == nil {
		return value == nil && r.lastWritten == nil
	}
	return *value == *r.lastWritten
}

func decodeState(raw string) (domain.LedgerState, error) {
	var state domain.LedgerState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.LedgerState{}, fmt.Errorf("%w: ledger state: %v", apperrors.ErrSerialization, err)
	}
	return state, nil
}
