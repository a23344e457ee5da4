package services

import (
	"context"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/SscSPs/finance_dashboard/internal/core/ledger"
)

// FinanceReaderSvc exposes the current ledger.
type FinanceReaderSvc interface {
	// State returns a copy of the current ledger that the caller may keep.
	State(ctx context.Context) domain.LedgerState
}

// FinanceWriterSvc changes the ledger. Every successful change is persisted before returning.
type FinanceWriterSvc interface {
	// Dispatch applies a raw action and returns the resulting state.
	Dispatch(ctx context.Context, action ledger.Action) (domain.LedgerState, error)

	CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error

	CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error

	CreateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error

	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error)

	// Reset discards the stored ledger and starts over as on a first run.
	Reset(ctx context.Context) (domain.LedgerState, error)
}

// FinanceLifecycleSvc manages startup and cross-writer notifications.
type FinanceLifecycleSvc interface {
	// Initialize rehydrates the persisted ledger, or seeds sample data when nothing is stored.
	Initialize(ctx context.Context) error

	// OnExternalChange registers fn for ledger changes written by another process.
	OnExternalChange(fn func(state domain.LedgerState)) (unsubscribe func())

	// Close stops watching for external changes.
	Close()
}

// FinanceSvcFacade combines all finance service interfaces
type FinanceSvcFacade interface {
	FinanceReaderSvc
	FinanceWriterSvc
	FinanceLifecycleSvc
}
