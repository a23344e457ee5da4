package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GoalStatus is the progress state of a financial goal.
type GoalStatus string

const (
	GoalPending    GoalStatus = "pending"
	GoalInProgress GoalStatus = "in-progress"
	GoalCompleted  GoalStatus = "completed"
)

// IsValid reports whether s is a known goal status.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalPending, GoalInProgress, GoalCompleted:
		return true
	}
	return false
}

// GoalIconStyle is the style tag used when rendering a goal icon.
type GoalIconStyle string

const (
	StyleSavings    GoalIconStyle = "savings"
	StyleInvestment GoalIconStyle = "investment"
	StyleDebt       GoalIconStyle = "debt"
)

// IsValid reports whether s is a known style tag.
func (s GoalIconStyle) IsValid() bool {
	switch s {
	case StyleSavings, StyleInvestment, StyleDebt:
		return true
	}
	return false
}

// Goal is a purely descriptive savings goal. It has no relationship to accounts or transactions.
type Goal struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Subtitle  string           `json:"subtitle"`
	Icon      IconKind         `json:"icon"`
	IconStyle GoalIconStyle    `json:"iconStyle"`
	Date      string           `json:"date"` // Free-form target text, e.g. "Target: Dec 2024"
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Status    GoalStatus       `json:"status"`
	Progress  *int             `json:"progress,omitempty"` // 0-100, not enforced
}

// Validate checks the goal payload before it enters the ledger.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return validationError("goal title is required")
	}
	if !g.Status.IsValid() {
		return validationError("unknown goal status %q", g.Status)
	}
	if g.Icon != "" && !g.Icon.IsValid() {
		return validationError("unknown icon %q", g.Icon)
	}
	if g.IconStyle != "" && !g.IconStyle.IsValid() {
		return validationError("unknown icon style %q", g.IconStyle)
	}
	if g.Amount != nil && g.Amount.IsNegative() {
		return validationError("goal amount must not be negative")
	}
	return nil
}
