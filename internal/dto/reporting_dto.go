package dto

import (
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryResponse is the dashboard summary with display strings alongside the numbers.
type SummaryResponse struct {
	domain.DashboardSummary
	Formatted FormattedSummary `json:"formatted"`
}

// FormattedSummary holds currency strings such as "$1,234.56".
type FormattedSummary struct {
	TotalBalance  string `json:"totalBalance"`
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
	NetChange     string `json:"netChange"`
}

// CategoryBreakdownParams defines query parameters for the spending breakdown.
type CategoryBreakdownParams struct {
	Limit int `form:"limit,default=5" binding:"min=1,max=50"`
}

// CategoryBreakdownResponse wraps the spending breakdown.
type CategoryBreakdownResponse struct {
	Categories []domain.CategoryAmount `json:"categories"`
}

// MonthlyOverviewParams defines query parameters for the monthly overview.
type MonthlyOverviewParams struct {
	Months int `form:"months,default=6" binding:"min=1,max=24"`
}

// MonthlyOverviewResponse wraps the monthly overview.
type MonthlyOverviewResponse struct {
	Months []domain.MonthlyTotals `json:"months"`
}

// SavingsExpenseRequest is one expense of a savings calculation.
type SavingsExpenseRequest struct {
	Name             string          `json:"name" binding:"required"`
	Amount           decimal.Decimal `json:"amount"`
	SavingPercentage decimal.Decimal `json:"savingPercentage"`
}

// CalculateSavingsRequest is the input of the savings calculator.
type CalculateSavingsRequest struct {
	Expenses []SavingsExpenseRequest `json:"expenses" binding:"dive"`
}

// ToDomain converts the request to domain expenses.
func (r CalculateSavingsRequest) ToDomain() []domain.SavingsExpense {
	out := make([]domain.SavingsExpense, len(r.Expenses))
	for i, e := range r.Expenses {
		out[i] = domain.SavingsExpense{Name: e.Name, Amount: e.Amount, SavingPercentage: e.SavingPercentage}
	}
	return out
}
