package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/SscSPs/finance_dashboard/internal/core/services"
	"github.com/SscSPs/finance_dashboard/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLedger struct {
	state domain.LedgerState
}

func (l staticLedger) State(context.Context) domain.LedgerState {
	return l.state.Clone()
}

func reportingFixture() domain.LedgerState {
	base := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	state := domain.NewLedgerState()
	state.Accounts = []domain.Account{
		{ID: "sav", Title: "Savings", Balance: decimal.NewFromInt(1000), Type: domain.Savings},
		{ID: "inv", Title: "Broker", Balance: decimal.NewFromInt(500), Type: domain.Investment},
		{ID: "chk", Title: "Checking", Balance: decimal.NewFromInt(300), Type: domain.Checking},
		{ID: "cc", Title: "Card", Balance: decimal.NewFromInt(200), Type: domain.Debt},
	}
	state.TotalBalance = domain.TotalBalance(state.Accounts)
	state.Transactions = []domain.Transaction{
		{ID: "t1", Title: "Salary", Amount: decimal.NewFromInt(2000), Direction: domain.Incoming, Category: "income", AccountID: "chk", Timestamp: base},
		{ID: "t2", Title: "Rent", Amount: decimal.NewFromInt(900), Direction: domain.Outgoing, Category: "housing", AccountID: "chk", Timestamp: base.Add(-time.Hour)},
		{ID: "t3", Title: "Groceries", Amount: decimal.NewFromInt(250), Direction: domain.Outgoing, Category: "food", AccountID: "cc", Timestamp: base.AddDate(0, -1, 0)},
		{ID: "t4", Title: "Grocery run", Amount: decimal.NewFromInt(50), Direction: domain.Outgoing, Category: "food", AccountID: "cc", Timestamp: base.AddDate(0, -2, 0)},
		{ID: "t5", Title: "Gift", Amount: decimal.NewFromInt(100), Direction: domain.Outgoing, AccountID: "sav", Timestamp: base.AddDate(-1, 0, 0)},
	}
	state.Goals = []domain.Goal{{ID: "g1", Title: "Trip", Status: domain.GoalPending}}
	return state
}

func TestReporting_Summary(t *testing.T) {
	svc := services.NewReportingService(staticLedger{state: reportingFixture()})

	summary := svc.Summary(context.Background())

	assert.Equal(t, "1600", summary.TotalBalance.String())
	assert.Equal(t, "2000", summary.TotalIncome.String())
	assert.Equal(t, "1300", summary.TotalExpenses.String())
	assert.Equal(t, "700", summary.NetChange.String())
	assert.Equal(t, "35", summary.NetChangePercentage.String())
	assert.Equal(t, 1, summary.IncomingCount)
	assert.Equal(t, 4, summary.OutgoingCount)
	assert.Equal(t, 2, summary.SavingsAccountsCount)
	assert.Equal(t, 4, summary.AccountsCount)
	assert.Equal(t, 1, summary.GoalsCount)
}

func TestReporting_SummaryWithoutIncome(t *testing.T) {
	svc := services.NewReportingService(staticLedger{state: domain.NewLedgerState()})

	summary := svc.Summary(context.Background())

	assert.True(t, summary.NetChangePercentage.IsZero())
	assert.True(t, summary.NetChange.IsZero())
}

func TestReporting_CategoryBreakdown(t *testing.T) {
	svc := services.NewReportingService(staticLedger{state: reportingFixture()})

	categories := svc.CategoryBreakdown(context.Background(), 5)

	require.Len(t, categories, 3)
	assert.Equal(t, "housing", categories[0].Category)
	assert.Equal(t, "69.2", categories[0].Percentage.String())
	assert.Equal(t, "food", categories[1].Category)
	assert.Equal(t, "300", categories[1].Amount.String())
	assert.Equal(t, "other", categories[2].Category, "uncategorized spending is grouped")

	top := svc.CategoryBreakdown(context.Background(), 1)
	require.Len(t, top, 1)
	assert.Equal(t, "housing", top[0].Category)
}

func TestReporting_MonthlyOverview(t *testing.T) {
	svc := services.NewReportingService(staticLedger{state: reportingFixture()})
	now := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	months := svc.MonthlyOverview(context.Background(), now, 6)

	require.Len(t, months, 6)
	assert.Equal(t, "Oct", months[0].Month)
	assert.Equal(t, 2025, months[0].Year)
	last := months[5]
	assert.Equal(t, "Mar", last.Month)
	assert.Equal(t, "2000", last.Income.String())
	assert.Equal(t, "900", last.Expenses.String())
	assert.Equal(t, "250", months[4].Expenses.String())
	assert.Equal(t, "50", months[3].Expenses.String())
	assert.True(t, months[0].Expenses.IsZero(), "last year's spending falls outside the window")
}

func TestReporting_ListTransactionsFiltersAndPages(t *testing.T) {
	svc := services.NewReportingService(staticLedger{state: reportingFixture()})
	ctx := context.Background()

	resp, err := svc.ListTransactions(ctx, dto.ListTransactionsParams{Search: "GROC"})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, "t3", resp.Transactions[0].ID, "newest first")
	assert.Empty(t, resp.NextToken)

	resp, err = svc.ListTransactions(ctx, dto.ListTransactionsParams{Type: domain.Incoming})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "t1", resp.Transactions[0].ID)

	resp, err = svc.ListTransactions(ctx, dto.ListTransactionsParams{AccountID: "cc"})
	require.NoError(t, err)
	assert.Len(t, resp.Transactions, 2)

	var seen []string
	params := dto.ListTransactionsParams{Limit: 2}
	for {
		page, err := svc.ListTransactions(ctx, params)
		require.NoError(t, err)
		for _, txn := range page.Transactions {
			seen = append(seen, txn.ID)
		}
		if page.NextToken == "" {
			break
		}
		params.NextToken = page.NextToken
	}
	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5"}, seen)
}

func TestReporting_ListTransactionsRejectsBadToken(t *testing.T) {
	svc := services.NewReportingService(staticLedger{state: reportingFixture()})

	_, err := svc.ListTransactions(context.Background(), dto.ListTransactionsParams{NextToken: "!!!"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReporting_InvestmentOverview(t *testing.T) {
	base := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	state := domain.NewLedgerState()
	state.Accounts = []domain.Account{
		{ID: "broker", Title: "Broker", Balance: decimal.NewFromInt(3000), Type: domain.Investment},
		{ID: "sav", Title: "Savings", Balance: decimal.NewFromInt(500), Type: domain.Savings},
		{ID: "etf", Title: "ETF", Balance: decimal.NewFromInt(1000), Type: domain.Investment},
	}
	state.Transactions = []domain.Transaction{
		{ID: "i1", Amount: decimal.NewFromInt(2000), Direction: domain.Incoming, AccountID: "broker", Timestamp: base.AddDate(0, -2, 0)},
		{ID: "i2", Amount: decimal.NewFromInt(500), Direction: domain.Incoming, AccountID: "etf", Timestamp: base},
		{ID: "s1", Amount: decimal.NewFromInt(999), Direction: domain.Incoming, AccountID: "sav", Timestamp: base},
		{ID: "i3", Amount: decimal.NewFromInt(200), Direction: domain.Outgoing, AccountID: "broker", Timestamp: base.AddDate(0, -1, 0)},
	}
	svc := services.NewReportingService(staticLedger{state: state})

	overview := svc.InvestmentOverview(context.Background())

	assert.Equal(t, "4000", overview.TotalValue.String())
	assert.Equal(t, "2500", overview.Inflow.String())
	assert.Equal(t, "200", overview.Outflow.String())
	assert.Equal(t, "1700", overview.Return.String())
	assert.Equal(t, "68", overview.ReturnPercentage.String())

	require.Len(t, overview.Allocation, 2)
	assert.Equal(t, "broker", overview.Allocation[0].AccountID)
	assert.Equal(t, "75", overview.Allocation[0].Percentage.String())
	assert.Equal(t, "ETF", overview.Allocation[1].Title)
	assert.Equal(t, "25", overview.Allocation[1].Percentage.String())

	ids := make([]string, 0, len(overview.Transactions))
	for _, txn := range overview.Transactions {
		ids = append(ids, txn.ID)
	}
	assert.Equal(t, []string{"i2", "i3", "i1"}, ids, "investment transactions only, newest first")
}

func TestReporting_InvestmentOverviewWithoutInflow(t *testing.T) {
	state := domain.NewLedgerState()
	state.Accounts = []domain.Account{{ID: "inv", Title: "Broker", Balance: decimal.NewFromInt(100), Type: domain.Investment}}
	svc := services.NewReportingService(staticLedger{state: state})

	overview := svc.InvestmentOverview(context.Background())
	assert.Equal(t, "100", overview.Return.String())
	assert.True(t, overview.ReturnPercentage.IsZero())
	require.Len(t, overview.Allocation, 1)
	assert.Equal(t, "100", overview.Allocation[0].Percentage.String())

	empty := services.NewReportingService(staticLedger{state: domain.NewLedgerState()}).InvestmentOverview(context.Background())
	assert.True(t, empty.TotalValue.IsZero())
	assert.Empty(t, empty.Allocation)
	assert.Empty(t, empty.Transactions)
}

func TestSavingsCalculator(t *testing.T) {
	svc := services.NewSavingsCalculatorService()
	expenses := []domain.SavingsExpense{
		{Name: "Groceries", Amount: decimal.NewFromInt(400), SavingPercentage: decimal.NewFromInt(10)},
		{Name: "Dining", Amount: decimal.NewFromInt(200), SavingPercentage: decimal.NewFromInt(25)},
	}

	plan, err := svc.Calculate(context.Background(), expenses)

	require.NoError(t, err)
	require.Len(t, plan.Expenses, 2)
	assert.Equal(t, "40", plan.Expenses[0].Saving.String())
	assert.Equal(t, "50", plan.Expenses[1].Saving.String())
	assert.Equal(t, "600", plan.TotalExpenses.String())
	assert.Equal(t, "90", plan.TotalSavings.String())
	assert.Equal(t, "510", plan.Remaining.String())
	assert.Equal(t, "15", plan.SavingsRate.String())
	assert.Equal(t, "17.5", plan.AverageSavingPercentage.String())
	assert.Equal(t, "1080", plan.AnnualSavings.String())
}

func TestSavingsCalculator_EmptyAndInvalid(t *testing.T) {
	svc := services.NewSavingsCalculatorService()

	plan, err := svc.Calculate(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, plan.SavingsRate.IsZero())
	assert.Empty(t, plan.Expenses)

	_, err = svc.Calculate(context.Background(), []domain.SavingsExpense{
		{Name: "Rent", Amount: decimal.NewFromInt(100), SavingPercentage: decimal.NewFromInt(120)},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Calculate(context.Background(), []domain.SavingsExpense{
		{Name: "Refund", Amount: decimal.NewFromInt(-5), SavingPercentage: decimal.NewFromInt(10)},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
