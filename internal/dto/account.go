package dto

import (
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRequest is the full account record sent on create and update.
// Updates replace the stored account, so every field is sent.
type AccountRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Balance     decimal.Decimal    `json:"balance"`
	Type        domain.AccountType `json:"type" binding:"required,account_type"`
}

// ToDomain converts the request to a domain.Account with the given ID.
func (r AccountRequest) ToDomain(id string) domain.Account {
	return domain.Account{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Balance:     r.Balance,
		Type:        r.Type,
	}
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts     []domain.Account `json:"accounts"`
	TotalBalance decimal.Decimal  `json:"totalBalance"`
}
