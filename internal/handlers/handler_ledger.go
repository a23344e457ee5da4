package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/finance_dashboard/internal/dto"
	"github.com/SscSPs/finance_dashboard/internal/middleware"
	"github.com/SscSPs/finance_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	financeService portssvc.FinanceSvcFacade
	analytics      *utils.PosthogClientWrapper
}

// registerLedgerRoutes registers the whole-ledger and display profile routes.
func registerLedgerRoutes(rg *gin.RouterGroup, fs portssvc.FinanceSvcFacade, analytics *utils.PosthogClientWrapper) {
	h := &ledgerHandler{financeService: fs, analytics: analytics}

	rg.GET("/ledger", h.getLedger)
	rg.POST("/ledger/reset", h.resetLedger)
	rg.GET("/profile", h.getProfile)
	rg.PATCH("/profile", h.updateProfile)
}

// getLedger godoc
// @Summary Get the whole ledger
// @Description Returns accounts, transactions, goals, profile and the aggregate balance.
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.LedgerState
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	c.JSON(http.StatusOK, h.financeService.State(c.Request.Context()))
}

// resetLedger godoc
// @Summary Reset the ledger
// @Description Discards the stored ledger and starts over as on a first run.
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.LedgerState
// @Security BearerAuth
// @Router /ledger/reset [post]
func (h *ledgerHandler) resetLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	state, err := h.financeService.Reset(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to reset ledger")
		return
	}
	middleware.PosthogEvent(c, h.analytics, "ledger_reset", nil)
	c.JSON(http.StatusOK, state)
}

// getProfile godoc
// @Summary Get the display profile
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.Profile
// @Security BearerAuth
// @Router /profile [get]
func (h *ledgerHandler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.financeService.State(c.Request.Context()).Profile)
}

// updateProfile godoc
// @Summary Update the display profile
// @Description Merges the given fields into the profile. Omitted fields are kept.
// @Tags ledger
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /profile [patch]
func (h *ledgerHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	profile, err := h.financeService.UpdateProfile(c.Request.Context(), req.ToPatch())
	if err != nil {
		respondError(c, logger, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
