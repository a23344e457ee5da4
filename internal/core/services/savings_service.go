package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/finance_dashboard/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

type savingsCalculatorService struct {
	BaseService
}

// NewSavingsCalculatorService creates the stateless savings calculator.
func NewSavingsCalculatorService() portssvc.SavingsCalculatorSvc {
	return &savingsCalculatorService{}
}

// Calculate projects the savings of cutting each monthly expense by its saving percentage.
func (s *savingsCalculatorService) Calculate(ctx context.Context, expenses []domain.SavingsExpense) (*domain.SavingsPlan, error) {
	plan := &domain.SavingsPlan{
		Expenses:                make([]domain.SavingsExpenseResult, 0, len(expenses)),
		TotalExpenses:           decimal.Zero,
		TotalSavings:            decimal.Zero,
		SavingsRate:             decimal.Zero,
		AverageSavingPercentage: decimal.Zero,
	}

	pctSum := decimal.Zero
	for i, expense := range expenses {
		if expense.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: expense %d has a negative amount", apperrors.ErrValidation, i)
		}
		if expense.SavingPercentage.IsNegative() || expense.SavingPercentage.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: expense %d saving percentage must be between 0 and 100", apperrors.ErrValidation, i)
		}

		saving := expense.Amount.Mul(expense.SavingPercentage).Div(hundred)
		plan.Expenses = append(plan.Expenses, domain.SavingsExpenseResult{SavingsExpense: expense, Saving: saving})
		plan.TotalExpenses = plan.TotalExpenses.Add(expense.Amount)
		plan.TotalSavings = plan.TotalSavings.Add(saving)
		pctSum = pctSum.Add(expense.SavingPercentage)
	}

	plan.Remaining = plan.TotalExpenses.Sub(plan.TotalSavings)
	plan.AnnualSavings = plan.TotalSavings.Mul(monthsPerYear)
	if plan.TotalExpenses.IsPositive() {
		plan.SavingsRate = plan.TotalSavings.Div(plan.TotalExpenses).Mul(hundred).Round(1)
	}
	if len(expenses) > 0 {
		plan.AverageSavingPercentage = pctSum.Div(decimal.NewFromInt(int64(len(expenses)))).Round(1)
	}

	s.LogDebug(ctx, "Savings plan calculated")
	return plan, nil
}
