package services

import (
	"time"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/SscSPs/finance_dashboard/internal/core/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seeder builds the sample ledger a first run starts with.
type Seeder struct {
	newID func() string
	now   func() time.Time
}

// SeederOption configures a Seeder.
type SeederOption func(*Seeder)

// WithSeedIDGenerator overrides the identifier source, mainly for tests.
func WithSeedIDGenerator(newID func() string) SeederOption {
	return func(s *Seeder) { s.newID = newID }
}

// WithSeedClock overrides the clock used for transaction timestamps.
func WithSeedClock(now func() time.Time) SeederOption {
	return func(s *Seeder) { s.now = now }
}

func NewSeeder(opts ...SeederOption) *Seeder {
	s := &Seeder{newID: uuid.NewString, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SampleData returns the whole seed as one batch. Account IDs are assigned here so the
// transactions can reference them without waiting for the accounts to land.
func (s *Seeder) SampleData() ledger.Batch {
	now := s.now().UTC()

	accounts := []domain.Account{
		{Title: "Main Savings", Description: "Personal savings", Balance: decimal.RequireFromString("8459.45"), Type: domain.Savings},
		{Title: "Checking Account", Description: "Daily expenses", Balance: decimal.RequireFromString("2850.00"), Type: domain.Checking},
		{Title: "Investment Portfolio", Description: "Stock & ETFs", Balance: decimal.RequireFromString("15230.80"), Type: domain.Investment},
		{Title: "Credit Card", Description: "Pending charges", Balance: decimal.RequireFromString("1200.00"), Type: domain.Debt},
	}

	transactions := []domain.Transaction{
		{
			Title:     "Apple Store Purchase",
			Amount:    decimal.RequireFromString("999.00"),
			Direction: domain.Outgoing,
			Category:  "shopping",
			Icon:      domain.IconShoppingCart,
			Timestamp: now,
			Status:    domain.StatusCompleted,
		},
		{
			Title:     "Salary Deposit",
			Amount:    decimal.RequireFromString("4500.00"),
			Direction: domain.Incoming,
			Category:  "income",
			Icon:      domain.IconWallet,
			Timestamp: now,
			Status:    domain.StatusCompleted,
		},
		{
			Title:     "Netflix Subscription",
			Amount:    decimal.RequireFromString("15.99"),
			Direction: domain.Outgoing,
			Category:  "entertainment",
			Icon:      domain.IconCreditCard,
			Timestamp: now.Add(-24 * time.Hour),
			Status:    domain.StatusPending,
		},
	}

	goals := []domain.Goal{
		sampleGoal("Emergency Fund", "3 months of expenses saved", domain.IconPiggyBank, domain.StyleSavings, "Target: Dec 2024", 15000, domain.GoalInProgress, 65),
		sampleGoal("Stock Portfolio", "Tech sector investment plan", domain.IconTrendingUp, domain.StyleInvestment, "Target: Jun 2024", 50000, domain.GoalPending, 30),
		sampleGoal("Debt Repayment", "Student loan payoff plan", domain.IconCreditCard, domain.StyleDebt, "Target: Mar 2025", 25000, domain.GoalInProgress, 45),
	}

	actions := make([]ledger.Action, 0, len(accounts)+len(transactions)+len(goals))
	for i := range accounts {
		accounts[i].ID = s.newID()
		actions = append(actions, ledger.AddAccount{Account: accounts[i]})
	}
	// Round-robin over the accounts.
	for i, txn := range transactions {
		txn.ID = s.newID()
		txn.AccountID = accounts[i%len(accounts)].ID
		actions = append(actions, ledger.AddTransaction{Transaction: txn})
	}
	for _, goal := range goals {
		goal.ID = s.newID()
		actions = append(actions, ledger.AddGoal{Goal: goal})
	}

	return ledger.Batch{Actions: actions}
}

func sampleGoal(title, subtitle string, icon domain.IconKind, style domain.GoalIconStyle, date string, amount int64, status domain.GoalStatus, progress int) domain.Goal {
	target := decimal.NewFromInt(amount)
	return domain.Goal{
		Title:     title,
		Subtitle:  subtitle,
		Icon:      icon,
		IconStyle: style,
		Date:      date,
		Amount:    &target,
		Status:    status,
		Progress:  &progress,
	}
}
