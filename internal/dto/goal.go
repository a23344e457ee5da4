package dto

import (
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GoalRequest is the full goal record sent on create and update.
type GoalRequest struct {
	Title     string               `json:"title" binding:"required"`
	Subtitle  string               `json:"subtitle"`
	Icon      domain.IconKind      `json:"icon" binding:"omitempty,icon_kind"`
	IconStyle domain.GoalIconStyle `json:"iconStyle" binding:"omitempty,oneof=savings investment debt"`
	Date      string               `json:"date"`
	Amount    *decimal.Decimal     `json:"amount"`
	Status    domain.GoalStatus    `json:"status" binding:"required,oneof=pending in-progress completed"`
	Progress  *int                 `json:"progress"`
}

// ToDomain converts the request to a domain.Goal with the given ID.
func (r GoalRequest) ToDomain(id string) domain.Goal {
	return domain.Goal{
		ID:        id,
		Title:     r.Title,
		Subtitle:  r.Subtitle,
		Icon:      r.Icon,
		IconStyle: r.IconStyle,
		Date:      r.Date,
		Amount:    r.Amount,
		Status:    r.Status,
		Progress:  r.Progress,
	}
}
