package domain

import (
	"github.com/shopspring/decimal"
)

// DashboardSummary holds the headline figures of the dashboard cards.
type DashboardSummary struct {
	TotalBalance         decimal.Decimal `json:"totalBalance"`
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	NetChange            decimal.Decimal `json:"netChange"`
	NetChangePercentage  decimal.Decimal `json:"netChangePercentage"` // Share of income, 0 without income
	IncomingCount        int             `json:"incomingCount"`
	OutgoingCount        int             `json:"outgoingCount"`
	SavingsAccountsCount int             `json:"savingsAccountsCount"` // Savings and investment accounts
	AccountsCount        int             `json:"accountsCount"`
	GoalsCount           int             `json:"goalsCount"`
}

// CategoryAmount is one slice of the spending breakdown.
type CategoryAmount struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// MonthlyTotals is one bar of the income/expenses overview chart.
type MonthlyTotals struct {
	Month    string          `json:"name"` // e.g. "Jan"
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// SavingsExpense is a recurring monthly expense with a target saving percentage.
type SavingsExpense struct {
	Name             string          `json:"name"`
	Amount           decimal.Decimal `json:"amount"`
	SavingPercentage decimal.Decimal `json:"savingPercentage"`
}

// SavingsExpenseResult is a SavingsExpense with its computed monthly saving.
type SavingsExpenseResult struct {
	SavingsExpense
	Saving decimal.Decimal `json:"saving"`
}

// SavingsPlan is the result of the savings calculator.
type SavingsPlan struct {
	Expenses                []SavingsExpenseResult `json:"expenses"`
	TotalExpenses           decimal.Decimal        `json:"totalExpenses"`
	TotalSavings            decimal.Decimal        `json:"totalSavings"`
	Remaining               decimal.Decimal        `json:"remaining"`
	SavingsRate             decimal.Decimal        `json:"savingsRate"`
	AverageSavingPercentage decimal.Decimal        `json:"averageSavingPercentage"`
	AnnualSavings           decimal.Decimal        `json:"annualSavings"`
}

// InvestmentOverview summarizes the investment accounts and the money moved through them.
type InvestmentOverview struct {
	TotalValue       decimal.Decimal        `json:"totalValue"`
	Inflow           decimal.Decimal        `json:"inflow"`
	Outflow          decimal.Decimal        `json:"outflow"`
	Return           decimal.Decimal        `json:"return"`           // TotalValue - (Inflow - Outflow)
	ReturnPercentage decimal.Decimal        `json:"returnPercentage"` // Share of inflow, 0 without inflow
	Allocation       []InvestmentAllocation `json:"allocation"`
	Transactions     []Transaction          `json:"transactions"` // Newest first
}

// InvestmentAllocation is one investment account's slice of the portfolio.
type InvestmentAllocation struct {
	AccountID  string          `json:"accountId"`
	Title      string          `json:"title"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}
