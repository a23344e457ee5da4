package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType defines the kind of an account. Debt accounts count against the aggregate balance.
type AccountType string

const (
	Savings    AccountType = "savings"
	Checking   AccountType = "checking"
	Investment AccountType = "investment"
	Debt       AccountType = "debt"
)

// IsValid reports whether t is one of the four known account kinds.
func (t AccountType) IsValid() bool {
	switch t {
	case Savings, Checking, Investment, Debt:
		return true
	}
	return false
}

// Account represents a financial account within the core domain.
// Balance only changes through transaction effects or a direct edit of the account.
type Account struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	Type        AccountType     `json:"type"`
}

// Validate checks the account payload before it enters the ledger.
func (a Account) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return validationError("account title is required")
	}
	if !a.Type.IsValid() {
		return validationError("unknown account type %q", a.Type)
	}
	return nil
}

// Contribution returns the account's share of the aggregate balance.
func (a Account) Contribution() decimal.Decimal {
	if a.Type == Debt {
		return a.Balance.Neg()
	}
	return a.Balance
}

// TotalBalance sums non-debt balances and subtracts debt balances.
func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Contribution())
	}
	return total
}
