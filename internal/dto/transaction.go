package dto

import (
	"time"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRequest is the full transaction record sent on create and update.
type TransactionRequest struct {
	Title     string                      `json:"title" binding:"required"`
	Amount    decimal.Decimal             `json:"amount"`
	Type      domain.TransactionDirection `json:"type" binding:"required,txn_direction"`
	Category  string                      `json:"category"`
	Icon      domain.IconKind             `json:"icon" binding:"omitempty,icon_kind"`
	Timestamp *time.Time                  `json:"timestamp"` // Optional, defaults to now
	Status    domain.TransactionStatus    `json:"status" binding:"omitempty,txn_status"`
	AccountID string                      `json:"accountId" binding:"required"`
}

// ToDomain converts the request to a domain.Transaction with the given ID.
// A missing timestamp becomes now and a missing status becomes completed.
func (r TransactionRequest) ToDomain(id string, now time.Time) domain.Transaction {
	ts := now
	if r.Timestamp != nil {
		ts = *r.Timestamp
	}
	status := r.Status
	if status == "" {
		status = domain.StatusCompleted
	}
	return domain.Transaction{
		ID:        id,
		Title:     r.Title,
		Amount:    r.Amount,
		Direction: r.Type,
		Category:  r.Category,
		Icon:      r.Icon,
		Timestamp: ts,
		Status:    status,
		AccountID: r.AccountID,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Search    string                      `form:"search"`                                   // Case-insensitive title match
	Type      domain.TransactionDirection `form:"type" binding:"omitempty,txn_direction"`   // incoming or outgoing
	AccountID string                      `form:"accountId"`                                // Only transactions of this account
	Limit     int                         `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string                      `form:"nextToken"`                                // Token from a previous page
}

// ListTransactionsResponse wraps one page of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    string               `json:"nextToken,omitempty"`
}
