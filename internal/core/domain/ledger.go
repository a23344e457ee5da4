package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Profile is the singleton display profile shown on the dashboard.
type Profile struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar"`
	Subscription string `json:"subscription"`
}

// ProfilePatch carries the fields to shallow-merge into a Profile. Nil fields are left untouched.
type ProfilePatch struct {
	Name         *string `json:"name,omitempty"`
	Role         *string `json:"role,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`
	Subscription *string `json:"subscription,omitempty"`
}

// Apply returns p with every non-nil field of patch merged in.
func (p Profile) Apply(patch ProfilePatch) Profile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	if patch.Avatar != nil {
		p.Avatar = *patch.Avatar
	}
	if patch.Subscription != nil {
		p.Subscription = *patch.Subscription
	}
	return p
}

// DefaultProfile is the profile of a freshly initialized ledger.
func DefaultProfile() Profile {
	return Profile{
		Name:         "Eugene An",
		Role:         "Prompt Engineer",
		Avatar:       "https://ferf1mheo22r9ira.public.blob.vercel-storage.com/avatar-01-n0x8HFv8EUetf9z6ht0wScJKoTHqf8.png",
		Subscription: "Free Trial",
	}
}

// LedgerState is the full persisted document: accounts, transactions, goals, profile
// and the derived aggregate balance.
type LedgerState struct {
	Accounts     []Account       `json:"accounts"`
	Transactions []Transaction   `json:"transactions"`
	Goals        []Goal          `json:"goals"`
	Profile      Profile         `json:"profile"`
	TotalBalance decimal.Decimal `json:"totalBalance"` // Derived from Accounts, never a source of truth
}

// NewLedgerState returns an empty ledger with the default profile.
func NewLedgerState() LedgerState {
	return LedgerState{
		Accounts:     []Account{},
		Transactions: []Transaction{},
		Goals:        []Goal{},
		Profile:      DefaultProfile(),
		TotalBalance: decimal.Zero,
	}
}

// Clone returns a copy of s whose slices do not alias s.
func (s LedgerState) Clone() LedgerState {
	out := s
	out.Accounts = cloneOrEmpty(s.Accounts)
	out.Transactions = cloneOrEmpty(s.Transactions)
	out.Goals = make([]Goal, len(s.Goals))
	for i, g := range s.Goals {
		if g.Amount != nil {
			amount := *g.Amount
			g.Amount = &amount
		}
		if g.Progress != nil {
			progress := *g.Progress
			g.Progress = &progress
		}
		out.Goals[i] = g
	}
	return out
}

// FindAccount returns the account with the given ID.
func (s LedgerState) FindAccount(id string) (Account, bool) {
	i := slices.IndexFunc(s.Accounts, func(a Account) bool { return a.ID == id })
	if i < 0 {
		return Account{}, false
	}
	return s.Accounts[i], true
}

// FindTransaction returns the transaction with the given ID.
func (s LedgerState) FindTransaction(id string) (Transaction, bool) {
	i := slices.IndexFunc(s.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return Transaction{}, false
	}
	return s.Transactions[i], true
}

// FindGoal returns the goal with the given ID.
func (s LedgerState) FindGoal(id string) (Goal, bool) {
	i := slices.IndexFunc(s.Goals, func(g Goal) bool { return g.ID == id })
	if i < 0 {
		return Goal{}, false
	}
	return s.Goals[i], true
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
