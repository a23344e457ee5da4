package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/SscSPs/finance_dashboard/internal/core/ledger"
	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// FinanceService owns the in-memory ledger. It is the single writer of the ledger document
// for its process and persists after every successful transition.
type FinanceService struct {
	BaseService
	repo    portsrepo.LedgerStateRepositoryFacade
	reducer *ledger.Reducer
	seeder  *Seeder
	seed    bool
	newID   func() string

	mu    sync.RWMutex
	state domain.LedgerState

	observersMu sync.Mutex
	observers   map[int]func(domain.LedgerState)
	nextObsID   int
	stopWatch   func()
}

// FinanceServiceOption is a function that configures a FinanceService
type FinanceServiceOption func(*FinanceService)

// WithSeeder replaces the sample data seeder.
func WithSeeder(seeder *Seeder) FinanceServiceOption {
	return func(s *FinanceService) { s.seeder = seeder }
}

// WithSampleData toggles seeding on a first run.
func WithSampleData(enabled bool) FinanceServiceOption {
	return func(s *FinanceService) { s.seed = enabled }
}

// WithFinanceIDGenerator overrides how new entity IDs are generated.
func WithFinanceIDGenerator(newID func() string) FinanceServiceOption {
	return func(s *FinanceService) {
		s.newID = newID
		s.reducer = ledger.NewReducer(ledger.WithIDGenerator(newID))
	}
}

// NewFinanceService creates a new FinanceService with the provided options
func NewFinanceService(repo portsrepo.LedgerStateRepositoryFacade, opts ...FinanceServiceOption) *FinanceService {
	s := &FinanceService{
		repo:      repo,
		reducer:   ledger.NewReducer(),
		seed:      true,
		newID:     uuid.NewString,
		state:     domain.NewLedgerState(),
		observers: make(map[int]func(domain.LedgerState)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seeder == nil {
		s.seeder = NewSeeder(WithSeedIDGenerator(s.newID))
	}
	return s
}

// Initialize rehydrates the stored ledger or, when nothing usable is stored, seeds it once.
func (s *FinanceService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopWatch == nil {
		s.stopWatch = s.repo.Watch(s.handleExternalChange)
	}
	return s.bootstrapLocked(ctx)
}

func (s *FinanceService) bootstrapLocked(ctx context.Context) error {
	if stored, ok := s.repo.Load(ctx); ok {
		next, err := s.reducer.Reduce(domain.NewLedgerState(), ledger.LoadState{State: *stored})
		if err != nil {
			s.LogError(ctx, err, "Failed to load stored ledger")
			return err
		}
		s.state = next
		s.LogInfo(ctx, "Ledger rehydrated from storage",
			slog.Int("accounts", len(next.Accounts)),
			slog.Int("transactions", len(next.Transactions)),
			slog.Int("goals", len(next.Goals)))
		return nil
	}

	s.state = domain.NewLedgerState()
	if !s.seed {
		s.LogInfo(ctx, "No stored ledger, starting empty")
		s.repo.Save(ctx, s.state)
		return nil
	}

	next, err := s.reducer.Reduce(s.state, s.seeder.SampleData())
	if err != nil {
		s.LogError(ctx, err, "Failed to seed sample data")
		return fmt.Errorf("failed to seed sample data: %w", err)
	}
	s.state = next
	s.repo.Save(ctx, s.state)
	s.LogInfo(ctx, "Ledger seeded with sample data", slog.String("total_balance", next.TotalBalance.StringFixed(2)))
	return nil
}

// State returns a copy of the current ledger.
func (s *FinanceService) State(ctx context.Context) domain.LedgerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Dispatch applies action and persists the result. A rejected action leaves the ledger untouched.
func (s *FinanceService) Dispatch(ctx context.Context, action ledger.Action) (domain.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(ctx, action)
}

func (s *FinanceService) dispatchLocked(ctx context.Context, action ledger.Action) (domain.LedgerState, error) {
	if action == nil {
		return s.state.Clone(), fmt.Errorf("%w: nil action", apperrors.ErrValidation)
	}
	next, err := s.reducer.Reduce(s.state, action)
	if err != nil {
		s.LogWarn(ctx, "Ledger action rejected", slog.String("action", action.Name()), slog.String("error", err.Error()))
		return s.state.Clone(), err
	}
	s.state = next
	s.repo.Save(ctx, s.state)
	s.LogDebug(ctx, "Ledger action applied", slog.String("action", action.Name()))
	return s.state.Clone(), nil
}

// CreateAccount adds an account under a freshly generated ID.
func (s *FinanceService) CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	account.ID = s.newID()
	next, err := s.Dispatch(ctx, ledger.AddAccount{Account: account})
	if err != nil {
		return nil, err
	}
	created, _ := next.FindAccount(account.ID)
	return &created, nil
}

// UpdateAccount replaces an existing account.
func (s *FinanceService) UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	next, err := s.Dispatch(ctx, ledger.UpdateAccount{Account: account})
	if err != nil {
		return nil, err
	}
	updated, _ := next.FindAccount(account.ID)
	return &updated, nil
}

// DeleteAccount removes an account together with its transactions.
func (s *FinanceService) DeleteAccount(ctx context.Context, accountID string) error {
	_, err := s.Dispatch(ctx, ledger.DeleteAccount{AccountID: accountID})
	return err
}

// CreateTransaction records a transaction under a freshly generated ID.
func (s *FinanceService) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	txn.ID = s.newID()
	next, err := s.Dispatch(ctx, ledger.AddTransaction{Transaction: txn})
	if err != nil {
		return nil, err
	}
	created, _ := next.FindTransaction(txn.ID)
	return &created, nil
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	next, err := s.Dispatch(ctx, ledger.UpdateTransaction{Transaction: txn})
	if err != nil {
		return nil, err
	}
	updated, _ := next.FindTransaction(txn.ID)
	return &updated, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, transactionID string) error {
	_, err := s.Dispatch(ctx, ledger.DeleteTransaction{TransactionID: transactionID})
	return err
}

func (s *FinanceService) CreateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	goal.ID = s.newID()
	next, err := s.Dispatch(ctx, ledger.AddGoal{Goal: goal})
	if err != nil {
		return nil, err
	}
	created, _ := next.FindGoal(goal.ID)
	return &created, nil
}

func (s *FinanceService) UpdateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	next, err := s.Dispatch(ctx, ledger.UpdateGoal{Goal: goal})
	if err != nil {
		return nil, err
	}
	updated, _ := next.FindGoal(goal.ID)
	return &updated, nil
}

func (s *FinanceService) DeleteGoal(ctx context.Context, goalID string) error {
	_, err := s.Dispatch(ctx, ledger.DeleteGoal{GoalID: goalID})
	return err
}

// UpdateProfile merges patch into the display profile.
func (s *FinanceService) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	next, err := s.Dispatch(ctx, ledger.UpdateProfile{Patch: patch})
	if err != nil {
		return domain.Profile{}, err
	}
	return next.Profile, nil
}

// Reset clears the stored ledger and bootstraps again as on a first run.
func (s *FinanceService) Reset(ctx context.Context) (domain.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.repo.Clear(ctx)
	if err := s.bootstrapLocked(ctx); err != nil {
		return s.state.Clone(), err
	}
	s.LogInfo(ctx, "Ledger reset")
	return s.state.Clone(), nil
}

// OnExternalChange registers fn for ledger documents written by another writer.
// The in-memory ledger is not replaced; last write wins on the next save.
func (s *FinanceService) OnExternalChange(fn func(state domain.LedgerState)) func() {
	s.observersMu.Lock()
	defer s.observersMu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn
	return func() {
		s.observersMu.Lock()
		defer s.observersMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *FinanceService) handleExternalChange(state *domain.LedgerState) {
	ctx := context.Background()
	if state == nil {
		s.LogWarn(ctx, "Stored ledger cleared by another writer")
		return
	}
	s.LogInfo(ctx, "Stored ledger changed by another writer",
		slog.Int("accounts", len(state.Accounts)),
		slog.Int("transactions", len(state.Transactions)))

	s.observersMu.Lock()
	observers := make([]func(domain.LedgerState), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.observersMu.Unlock()

	for _, fn := range observers {
		fn(state.Clone())
	}
}

// Close stops watching the store.
func (s *FinanceService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
}
