package ledger

import "github.com/SscSPs/finance_dashboard/internal/core/domain"

// Action is a tagged intent applied to the ledger by Reducer.Reduce.
// The set of actions is closed; only the types in this file implement it.
type Action interface {
	// Name returns a stable identifier used in logs.
	Name() string
	isAction()
}

// AddAccount appends a new account. An empty Account.ID is assigned by the reducer.
type AddAccount struct{ Account domain.Account }

// UpdateAccount replaces the account with the same ID.
type UpdateAccount struct{ Account domain.Account }

// DeleteAccount removes an account and every transaction it owns.
type DeleteAccount struct{ AccountID string }

// AddTransaction records a transaction and applies its signed effect to the owning account.
type AddTransaction struct{ Transaction domain.Transaction }

// UpdateTransaction replaces a transaction and applies the change in signed effect.
type UpdateTransaction struct{ Transaction domain.Transaction }

// DeleteTransaction removes a transaction and reverses its signed effect.
type DeleteTransaction struct{ TransactionID string }

// AddGoal appends a new goal.
type AddGoal struct{ Goal domain.Goal }

// UpdateGoal replaces the goal with the same ID.
type UpdateGoal struct{ Goal domain.Goal }

// DeleteGoal removes a goal.
type DeleteGoal struct{ GoalID string }

// UpdateProfile shallow-merges the patch into the profile.
type UpdateProfile struct{ Patch domain.ProfilePatch }

// LoadState replaces the ledger wholesale, e.g. when rehydrating from storage.
type LoadState struct{ State domain.LedgerState }

// Batch applies Actions in order as a single transition. If any action fails,
// none of them take effect.
type Batch struct{ Actions []Action }

func (AddAccount) Name() string        { return "ADD_ACCOUNT" }
func (UpdateAccount) Name() string     { return "UPDATE_ACCOUNT" }
func (DeleteAccount) Name() string     { return "DELETE_ACCOUNT" }
func (AddTransaction) Name() string    { return "ADD_TRANSACTION" }
func (UpdateTransaction) Name() string { return "UPDATE_TRANSACTION" }
func (DeleteTransaction) Name() string { return "DELETE_TRANSACTION" }
func (AddGoal) Name() string           { return "ADD_GOAL" }
func (UpdateGoal) Name() string        { return "UPDATE_GOAL" }
func (DeleteGoal) Name() string        { return "DELETE_GOAL" }
func (UpdateProfile) Name() string     { return "UPDATE_PROFILE" }
func (LoadState) Name() string         { return "LOAD_STATE" }
func (Batch) Name() string             { return "BATCH" }

func (AddAccount) isAction()        {}
func (UpdateAccount) isAction()     {}
func (DeleteAccount) isAction()     {}
func (AddTransaction) isAction()    {}
func (UpdateTransaction) isAction() {}
func (DeleteTransaction) isAction() {}
func (AddGoal) isAction()           {}
func (UpdateGoal) isAction()        {}
func (DeleteGoal) isAction()        {}
func (UpdateProfile) isAction()     {}
func (LoadState) isAction()         {}
func (Batch) isAction()             {}
