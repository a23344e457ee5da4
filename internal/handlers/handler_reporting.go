package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/finance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/finance_dashboard/internal/dto"
	"github.com/SscSPs/finance_dashboard/internal/middleware"
	"github.com/SscSPs/finance_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	savingsService   portssvc.SavingsCalculatorSvc
	now              func() time.Time
}

func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvc, ss portssvc.SavingsCalculatorSvc) {
	h := &reportingHandler{reportingService: rs, savingsService: ss, now: time.Now}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/categories", h.getCategories)
		reports.GET("/monthly", h.getMonthly)
		reports.GET("/investments", h.getInvestments)
	}
	rg.POST("/savings/calculate", h.calculateSavings)
}

// getSummary godoc
// @Summary Dashboard summary
// @Description Headline figures of the dashboard, raw and formatted for display.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	summary := h.reportingService.Summary(c.Request.Context())
	c.JSON(http.StatusOK, dto.SummaryResponse{
		DashboardSummary: summary,
		Formatted: dto.FormattedSummary{
			TotalBalance:  utils.FormatMoney(summary.TotalBalance),
			TotalIncome:   utils.FormatMoney(summary.TotalIncome),
			TotalExpenses: utils.FormatMoney(summary.TotalExpenses),
			NetChange:     utils.FormatMoney(summary.NetChange),
		},
	})
}

// getCategories godoc
// @Summary Spending by category
// @Tags reports
// @Produce json
// @Param limit query int false "Number of categories" default(5)
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportingHandler) getCategories(c *gin.Context) {
	var params dto.CategoryBreakdownParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.CategoryBreakdownResponse{
		Categories: h.reportingService.CategoryBreakdown(c.Request.Context(), params.Limit),
	})
}

// getMonthly godoc
// @Summary Monthly income and expenses
// @Tags reports
// @Produce json
// @Param months query int false "Number of trailing months" default(6)
// @Success 200 {object} dto.MonthlyOverviewResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthly(c *gin.Context) {
	var params dto.MonthlyOverviewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MonthlyOverviewResponse{
		Months: h.reportingService.MonthlyOverview(c.Request.Context(), h.now(), params.Months),
	})
}

// getInvestments godoc
// @Summary Investment overview
// @Description Investment accounts with their allocation, money moved in and out, and the return on it.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.InvestmentOverview
// @Security BearerAuth
// @Router /reports/investments [get]
func (h *reportingHandler) getInvestments(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportingService.InvestmentOverview(c.Request.Context()))
}

// calculateSavings godoc
// @Summary Savings calculator
// @Description Projects savings from cutting each monthly expense by a percentage.
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.CalculateSavingsRequest true "Monthly expenses"
// @Success 200 {object} domain.SavingsPlan
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /savings/calculate [post]
func (h *reportingHandler) calculateSavings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CalculateSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CalculateSavings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.savingsService.Calculate(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, logger, err, "Failed to calculate savings")
		return
	}
	c.JSON(http.StatusOK, plan)
}
