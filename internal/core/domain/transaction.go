package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates whether money enters or leaves the owning account.
type TransactionDirection string

const (
	Incoming TransactionDirection = "incoming"
	Outgoing TransactionDirection = "outgoing"
)

// IsValid reports whether d is a known direction.
func (d TransactionDirection) IsValid() bool {
	return d == Incoming || d == Outgoing
}

// TransactionStatus is the lifecycle status of a transaction.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
)

// IsValid reports whether s is a known transaction status.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusFailed:
		return true
	}
	return false
}

// Transaction represents a single movement of money on one account.
type Transaction struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Amount    decimal.Decimal      `json:"amount"` // Unsigned; Direction carries the sign
	Direction TransactionDirection `json:"type"`
	Category  string               `json:"category"`
	Icon      IconKind             `json:"icon"`
	Timestamp time.Time            `json:"timestamp"`
	Status    TransactionStatus    `json:"status"`
	AccountID string               `json:"accountId"` // FK -> Account.ID (required)
}

// Validate checks the transaction payload before it enters the ledger.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return validationError("transaction title is required")
	}
	if t.Amount.IsNegative() {
		return validationError("transaction amount must not be negative")
	}
	if !t.Direction.IsValid() {
		return validationError("unknown transaction type %q", t.Direction)
	}
	if !t.Status.IsValid() {
		return validationError("unknown transaction status %q", t.Status)
	}
	if t.Icon != "" && !t.Icon.IsValid() {
		return validationError("unknown icon %q", t.Icon)
	}
	if t.AccountID == "" {
		return validationError("transaction account is required")
	}
	return nil
}

// SignedEffect is the contribution of the transaction to its owning account's balance:
// +amount for incoming, -amount for outgoing.
func (t Transaction) SignedEffect() decimal.Decimal {
	if t.Direction == Outgoing {
		return t.Amount.Neg()
	}
	return t.Amount
}
