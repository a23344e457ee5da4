// Package ledger holds the state transition function that keeps account balances
// consistent with the transaction list.
package ledger

import (
	"fmt"
	"slices"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reducer maps (state, action) to a new state. It never mutates its input: every list an
// action changes is rebuilt as a fresh slice, unchanged lists are shared with the input.
type Reducer struct {
	newID func() string
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithIDGenerator overrides the generator used for actions that carry no identifier.
func WithIDGenerator(fn func() string) Option {
	return func(r *Reducer) {
		r.newID = fn
	}
}

// NewReducer creates a Reducer that assigns UUIDs to new entities.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{newID: uuid.NewString}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce applies action to state. On error the input state is returned unchanged together
// with an error wrapping apperrors.ErrNotFound (missing account, transaction or goal),
// apperrors.ErrValidation (invalid payload) or apperrors.ErrDuplicate (identifier reuse).
func (r *Reducer) Reduce(state domain.LedgerState, action Action) (domain.LedgerState, error) {
	switch a := action.(type) {
	case AddAccount:
		return r.addAccount(state, a.Account)
	case UpdateAccount:
		return r.updateAccount(state, a.Account)
	case DeleteAccount:
		return r.deleteAccount(state, a.AccountID)
	case AddTransaction:
		return r.addTransaction(state, a.Transaction)
	case UpdateTransaction:
		return r.updateTransaction(state, a.Transaction)
	case DeleteTransaction:
		return r.deleteTransaction(state, a.TransactionID)
	case AddGoal:
		return r.addGoal(state, a.Goal)
	case UpdateGoal:
		return r.updateGoal(state, a.Goal)
	case DeleteGoal:
		return r.deleteGoal(state, a.GoalID)
	case UpdateProfile:
		next := state
		next.Profile = state.Profile.Apply(a.Patch)
		return next, nil
	case LoadState:
		next := a.State.Clone()
		next.TotalBalance = domain.TotalBalance(next.Accounts)
		return next, nil
	case Batch:
		return r.batch(state, a.Actions)
	default:
		return state, fmt.Errorf("%w: unsupported action %T", apperrors.ErrValidation, action)
	}
}

func (r *Reducer) addAccount(state domain.LedgerState, account domain.Account) (domain.LedgerState, error) {
	if err := account.Validate(); err != nil {
		return state, err
	}
	if account.ID == "" {
		account.ID = r.newID()
	} else if _, exists := state.FindAccount(account.ID); exists {
		return state, fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.ID)
	}

	next := state
	next.Accounts = append(slices.Clone(state.Accounts), account)
	next.TotalBalance = domain.TotalBalance(next.Accounts)
	return next, nil
}

func (r *Reducer) updateAccount(state domain.LedgerState, account domain.Account) (domain.LedgerState, error) {
	if err := account.Validate(); err != nil {
		return state, err
	}
	i := indexOfAccount(state.Accounts, account.ID)
	if i < 0 {
		return state, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, account.ID)
	}

	next := state
	next.Accounts = slices.Clone(state.Accounts)
	next.Accounts[i] = account
	next.TotalBalance = domain.TotalBalance(next.Accounts)
	return next, nil
}

func (r *Reducer) deleteAccount(state domain.LedgerState, accountID string) (domain.LedgerState, error) {
	if indexOfAccount(state.Accounts, accountID) < 0 {
		return state, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}

	next := state
	next.Accounts = slices.DeleteFunc(slices.Clone(state.Accounts), func(a domain.Account) bool {
		return a.ID == accountID
	})
	next.Transactions = slices.DeleteFunc(slices.Clone(state.Transactions), func(t domain.Transaction) bool {
		return t.AccountID == accountID
	})
	next.TotalBalance = domain.TotalBalance(next.Accounts)
	return next, nil
}

func (r *Reducer) addTransaction(state domain.LedgerState, txn domain.Transaction) (domain.LedgerState, error) {
	if err := txn.Validate(); err != nil {
		return state, err
	}
	if indexOfAccount(state.Accounts, txn.AccountID) < 0 {
		return state, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, txn.AccountID)
	}
	if txn.ID == "" {
		txn.ID = r.newID()
	} else if _, exists := state.FindTransaction(txn.ID); exists {
		return state, fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.ID)
	}

	next := state
	next.Accounts = withBalanceDelta(state.Accounts, txn.AccountID, txn.SignedEffect())
	next.Transactions = append([]domain.Transaction{txn}, state.Transactions...)
	next.TotalBalance = domain.TotalBalance(next.Accounts)
	return next, nil
}

func (r *Reducer) updateTransaction(state domain.LedgerState, txn domain.Transaction) (domain.LedgerState, error) {
	if err := txn.Validate(); err != nil {
		return state, err
	}
	i := slices.IndexFunc(state.Transactions, func(t domain.Transaction) bool { return t.ID == txn.ID })
	if i < 0 {
		return state, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, txn.ID)
	}
	if indexOfAccount(state.Accounts, txn.AccountID) < 0 {
		return state, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, txn.AccountID)
	}
	old := state.Transactions[i]

	var accounts []domain.Account
	if old.AccountID == txn.AccountID {
		accounts = withBalanceDelta(state.Accounts, txn.AccountID, txn.SignedEffect().Sub(old.SignedEffect()))
	} else {
		// Reassigned: reverse on the previous owner, apply fresh on the new one.
		accounts = withBalanceDelta(state.Accounts, old.AccountID, old.SignedEffect().Neg())
		accounts = withBalanceDelta(accounts, txn.AccountID, txn.SignedEffect())
	}

	next := state
	next.Accounts = accounts
	next.Transactions = slices.Clone(state.Transactions)
	next.Transactions[i] = txn
	next.TotalBalance = domain.TotalBalance(next.Accounts)
	return next, nil
}

func (r *Reducer) deleteTransaction(state domain.LedgerState, transactionID string) (domain.LedgerState, error) {
	txn, ok := state.FindTransaction(transactionID)
	if !ok {
		return state, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, transactionID)
	}

	next := state
	next.Accounts = withBalanceDelta(state.Accounts, txn.AccountID, txn.SignedEffect().Neg())
	next.Transactions = slices.DeleteFunc(slices.Clone(state.Transactions), func(t domain.Transaction) bool {
		return t.ID == transactionID
	})
	next.TotalBalance = domain.TotalBalance(next.Accounts)
	return next, nil
}

func (r *Reducer) addGoal(state domain.LedgerState, goal domain.Goal) (domain.LedgerState, error) {
	if err := goal.Validate(); err != nil {
		return state, err
	}
	if goal.ID == "" {
		goal.ID = r.newID()
	} else if _, exists := state.FindGoal(goal.ID); exists {
		return state, fmt.Errorf("%w: goal %s", apperrors.ErrDuplicate, goal.ID)
	}

	next := state
	next.Goals = append(slices.Clone(state.Goals), goal)
	return next, nil
}

func (r *Reducer) updateGoal(state domain.LedgerState, goal domain.Goal) (domain.LedgerState, error) {
	if err := goal.Validate(); err != nil {
		return state, err
	}
	i := slices.IndexFunc(state.Goals, func(g domain.Goal) bool { return g.ID == goal.ID })
	if i < 0 {
		return state, fmt.Errorf("%w: %s", apperrors.ErrGoalNotFound, goal.ID)
	}

	next := state
	next.Goals = slices.Clone(state.Goals)
	next.Goals[i] = goal
	return next, nil
}

func (r *Reducer) deleteGoal(state domain.LedgerState, goalID string) (domain.LedgerState, error) {
	if _, ok := state.FindGoal(goalID); !ok {
		return state, fmt.Errorf("%w: %s", apperrors.ErrGoalNotFound, goalID)
	}

	next := state
	next.Goals = slices.DeleteFunc(slices.Clone(state.Goals), func(g domain.Goal) bool {
		return g.ID == goalID
	})
	return next, nil
}

func (r *Reducer) batch(state domain.LedgerState, actions []Action) (domain.LedgerState, error) {
	current := state
	for i, action := range actions {
		next, err := r.Reduce(current, action)
		if err != nil {
			return state, fmt.Errorf("batch action %d (%s): %w", i, action.Name(), err)
		}
		current = next
	}
	return current, nil
}

func indexOfAccount(accounts []domain.Account, id string) int {
	return slices.IndexFunc(accounts, func(a domain.Account) bool { return a.ID == id })
}

// withBalanceDelta returns a copy of accounts with delta added to the balance of accountID.
// A missing account leaves the copy unchanged.
func withBalanceDelta(accounts []domain.Account, accountID string, delta decimal.Decimal) []domain.Account {
	out := slices.Clone(accounts)
	for i := range out {
		if out[i].ID == accountID {
			out[i].Balance = out[i].Balance.Add(delta)
		}
	}
	return out
}
