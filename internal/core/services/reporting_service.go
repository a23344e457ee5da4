package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/finance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/finance_dashboard/internal/dto"
	"github.com/SscSPs/finance_dashboard/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const uncategorized = "other"

var hundred = decimal.NewFromInt(100)

// reportingService derives read-only figures from the ledger owned by the finance service.
type reportingService struct {
	BaseService
	finance portssvc.FinanceReaderSvc
}

// NewReportingService creates a new reporting service.
func NewReportingService(finance portssvc.FinanceReaderSvc) portssvc.ReportingSvc {
	return &reportingService{finance: finance}
}

func (s *reportingService) Summary(ctx context.Context) domain.DashboardSummary {
	state := s.finance.State(ctx)

	summary := domain.DashboardSummary{
		TotalBalance:        state.TotalBalance,
		TotalIncome:         decimal.Zero,
		TotalExpenses:       decimal.Zero,
		NetChangePercentage: decimal.Zero,
		AccountsCount:       len(state.Accounts),
		GoalsCount:          len(state.Goals),
	}
	for _, txn := range state.Transactions {
		switch txn.Direction {
		case domain.Incoming:
			summary.TotalIncome = summary.TotalIncome.Add(txn.Amount)
			summary.IncomingCount++
		case domain.Outgoing:
			summary.TotalExpenses = summary.TotalExpenses.Add(txn.Amount)
			summary.OutgoingCount++
		}
	}
	for _, account := range state.Accounts {
		if account.Type == domain.Savings || account.Type == domain.Investment {
			summary.SavingsAccountsCount++
		}
	}

	summary.NetChange = summary.TotalIncome.Sub(summary.TotalExpenses)
	if summary.TotalIncome.IsPositive() {
		summary.NetChangePercentage = summary.NetChange.Div(summary.TotalIncome).Mul(hundred).Round(1)
	}
	return summary
}

func (s *reportingService) CategoryBreakdown(ctx context.Context, limit int) []domain.CategoryAmount {
	state := s.finance.State(ctx)

	totals := make(map[string]decimal.Decimal)
	totalExpenses := decimal.Zero
	for _, txn := range state.Transactions {
		if txn.Direction != domain.Outgoing {
			continue
		}
		category := strings.TrimSpace(txn.Category)
		if category == "" {
			category = uncategorized
		}
		totals[category] = totals[category].Add(txn.Amount)
		totalExpenses = totalExpenses.Add(txn.Amount)
	}

	categories := make([]domain.CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		pct := decimal.Zero
		if totalExpenses.IsPositive() {
			pct = amount.Div(totalExpenses).Mul(hundred).Round(1)
		}
		categories = append(categories, domain.CategoryAmount{Category: category, Amount: amount, Percentage: pct})
	}
	slices.SortFunc(categories, func(a, b domain.CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})

	if limit > 0 && len(categories) > limit {
		categories = categories[:limit]
	}
	return categories
}

// MonthlyOverview buckets transactions by calendar month (UTC) for the months trailing up
// to and including the month of now, oldest first. Months without activity are zero.
func (s *reportingService) MonthlyOverview(ctx context.Context, now time.Time, months int) []domain.MonthlyTotals {
	if months <= 0 {
		return []domain.MonthlyTotals{}
	}
	state := s.finance.State(ctx)

	type bucketKey struct {
		year  int
		month time.Month
	}
	current := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	result := make([]domain.MonthlyTotals, months)
	index := make(map[bucketKey]int, months)
	for i := 0; i < months; i++ {
		start := current.AddDate(0, i-months+1, 0)
		result[i] = domain.MonthlyTotals{
			Month:    start.Format("Jan"),
			Year:     start.Year(),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
		index[bucketKey{start.Year(), start.Month()}] = i
	}

	for _, txn := range state.Transactions {
		ts := txn.Timestamp.UTC()
		i, ok := index[bucketKey{ts.Year(), ts.Month()}]
		if !ok {
			continue
		}
		if txn.Direction == domain.Incoming {
			result[i].Income = result[i].Income.Add(txn.Amount)
		} else {
			result[i].Expenses = result[i].Expenses.Add(txn.Amount)
		}
	}
	return result
}

// InvestmentOverview reports the investment accounts, their allocation and the return
// over what was deposited into them. Percentages are rounded to one decimal.
func (s *reportingService) InvestmentOverview(ctx context.Context) domain.InvestmentOverview {
	state := s.finance.State(ctx)

	overview := domain.InvestmentOverview{
		TotalValue:       decimal.Zero,
		Inflow:           decimal.Zero,
		Outflow:          decimal.Zero,
		ReturnPercentage: decimal.Zero,
		Allocation:       []domain.InvestmentAllocation{},
		Transactions:     []domain.Transaction{},
	}

	investment := make(map[string]bool)
	for _, account := range state.Accounts {
		if account.Type != domain.Investment {
			continue
		}
		investment[account.ID] = true
		overview.TotalValue = overview.TotalValue.Add(account.Balance)
		overview.Allocation = append(overview.Allocation, domain.InvestmentAllocation{
			AccountID: account.ID,
			Title:     account.Title,
			Value:     account.Balance,
		})
	}
	for i := range overview.Allocation {
		overview.Allocation[i].Percentage = decimal.Zero
		if !overview.TotalValue.IsZero() {
			overview.Allocation[i].Percentage = overview.Allocation[i].Value.Div(overview.TotalValue).Mul(hundred).Round(1)
		}
	}

	for _, txn := range state.Transactions {
		if !investment[txn.AccountID] {
			continue
		}
		overview.Transactions = append(overview.Transactions, txn)
		switch txn.Direction {
		case domain.Incoming:
			overview.Inflow = overview.Inflow.Add(txn.Amount)
		case domain.Outgoing:
			overview.Outflow = overview.Outflow.Add(txn.Amount)
		}
	}
	slices.SortStableFunc(overview.Transactions, func(a, b domain.Transaction) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	overview.Return = overview.TotalValue.Sub(overview.Inflow.Sub(overview.Outflow))
	if overview.Inflow.IsPositive() {
		overview.ReturnPercentage = overview.Return.Div(overview.Inflow).Mul(hundred).Round(1)
	}
	return overview
}

// ListTransactions filters transactions and pages through them newest first.
func (s *reportingService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	var cursor *pagination.Cursor
	if params.NextToken != "" {
		decoded, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			s.LogWarn(ctx, "Rejected pagination token", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &decoded
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	state := s.finance.State(ctx)
	search := strings.ToLower(strings.TrimSpace(params.Search))

	filtered := make([]domain.Transaction, 0, len(state.Transactions))
	for _, txn := range state.Transactions {
		if search != "" && !strings.Contains(strings.ToLower(txn.Title), search) {
			continue
		}
		if params.Type != "" && txn.Direction != params.Type {
			continue
		}
		if params.AccountID != "" && txn.AccountID != params.AccountID {
			continue
		}
		filtered = append(filtered, txn)
	}
	slices.SortStableFunc(filtered, func(a, b domain.Transaction) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	page := make([]domain.Transaction, 0, limit)
	hasMore := false
	for _, txn := range filtered {
		if cursor != nil && !cursor.After(txn.Timestamp, txn.ID) {
			continue
		}
		if len(page) == limit {
			hasMore = true
			break
		}
		page = append(page, txn)
	}

	resp := &dto.ListTransactionsResponse{Transactions: page}
	if hasMore {
		last := page[len(page)-1]
		resp.NextToken = pagination.EncodeToken(pagination.Cursor{Timestamp: last.Timestamp, ID: last.ID})
	}
	return resp, nil
}
