package repositories

import (
	"context"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
)

// LedgerStateReader loads the persisted ledger document.
type LedgerStateReader interface {
	// Load returns the stored state. The boolean is false when nothing usable is stored;
	// read and decode failures are reported the same way.
	Load(ctx context.Context) (*domain.LedgerState, bool)
}

// LedgerStateWriter persists the ledger document. Failures are logged, never returned.
type LedgerStateWriter interface {
	Save(ctx context.Context, state domain.LedgerState)
	Clear(ctx context.Context)
}

// LedgerStateWatcher reports changes of the ledger document made by another writer.
type LedgerStateWatcher interface {
	// Watch calls fn with the new state (nil when cleared) and returns an unsubscribe function.
	Watch(fn func(state *domain.LedgerState)) (unsubscribe func())
}

// LedgerStateRepositoryFacade combines all ledger state repository interfaces
type LedgerStateRepositoryFacade interface {
	LedgerStateReader
	LedgerStateWriter
	LedgerStateWatcher
}
