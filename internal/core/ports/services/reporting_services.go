package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/SscSPs/finance_dashboard/internal/dto"
)

// ReportingSvc derives dashboard figures from the current ledger. It never changes state.
type ReportingSvc interface {
	// Summary computes the headline dashboard figures.
	Summary(ctx context.Context) domain.DashboardSummary

	// CategoryBreakdown returns outgoing totals per category, largest first, at most limit entries.
	CategoryBreakdown(ctx context.Context, limit int) []domain.CategoryAmount

	// MonthlyOverview returns income and expenses for the months trailing up to now.
	MonthlyOverview(ctx context.Context, now time.Time, months int) []domain.MonthlyTotals

	// InvestmentOverview reports investment accounts, their allocation and return.
	InvestmentOverview(ctx context.Context) domain.InvestmentOverview

	// ListTransactions filters and paginates transactions, newest first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// SavingsCalculatorSvc computes potential savings for a list of monthly expenses.
type SavingsCalculatorSvc interface {
	Calculate(ctx context.Context, expenses []domain.SavingsExpense) (*domain.SavingsPlan, error)
}
