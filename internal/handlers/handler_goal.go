package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/finance_dashboard/internal/dto"
	"github.com/SscSPs/finance_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

type goalHandler struct {
	financeService portssvc.FinanceSvcFacade
}

func registerGoalRoutes(rg *gin.RouterGroup, fs portssvc.FinanceSvcFacade) {
	h := &goalHandler{financeService: fs}

	goals := rg.Group("/goals")
	{
		goals.GET("", h.listGoals)
		goals.POST("", h.createGoal)
		goals.GET("/:goalID", h.getGoal)
		goals.PUT("/:goalID", h.updateGoal)
		goals.DELETE("/:goalID", h.deleteGoal)
	}
}

// listGoals godoc
// @Summary List financial goals
// @Tags goals
// @Produce json
// @Success 200 {array} domain.Goal
// @Security BearerAuth
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	c.JSON(http.StatusOK, h.financeService.State(c.Request.Context()).Goals)
}

// createGoal godoc
// @Summary Create a financial goal
// @Tags goals
// @Accept json
// @Produce json
// @Param goal body dto.GoalRequest true "Goal details"
// @Success 201 {object} domain.Goal
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.financeService.CreateGoal(c.Request.Context(), req.ToDomain(""))
	if err != nil {
		respondError(c, logger, err, "Failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// getGoal godoc
// @Summary Get a financial goal by ID
// @Tags goals
// @Produce json
// @Param goalID path string true "Goal ID"
// @Success 200 {object} domain.Goal
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{goalID} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	goal, ok := h.financeService.State(c.Request.Context()).FindGoal(c.Param("goalID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}
	c.JSON(http.StatusOK, goal)
}

// updateGoal godoc
// @Summary Update a financial goal
// @Tags goals
// @Accept json
// @Produce json
// @Param goalID path string true "Goal ID"
// @Param goal body dto.GoalRequest true "Goal details"
// @Success 200 {object} domain.Goal
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{goalID} [put]
func (h *goalHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.financeService.UpdateGoal(c.Request.Context(), req.ToDomain(c.Param("goalID")))
	if err != nil {
		respondError(c, logger, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

// deleteGoal godoc
// @Summary Delete a financial goal
// @Tags goals
// @Param goalID path string true "Goal ID"
// @Success 204
// @Failure 404 {object} map[string]string "Goal not found"
// @Security BearerAuth
// @Router /goals/{goalID} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.financeService.DeleteGoal(c.Request.Context(), c.Param("goalID")); err != nil {
		respondError(c, logger, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}
