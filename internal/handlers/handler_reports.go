package handlers

import (
	"net/http"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for views derived from the ledger
type reportHandler struct {
	ledgerService portssvc.LedgerSvc
}

// newReportHandler creates a new reportHandler
func newReportHandler(ls portssvc.LedgerSvc) *reportHandler {
	return &reportHandler{
		ledgerService: ls,
	}
}

// registerReportRoutes registers routes related to ledger reports
func registerReportRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvc) {
	h := newReportHandler(ls)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/ledger/:role", h.getPartyLedger)
		reports.GET("/expenses", h.getExpenses)
		reports.GET("/pending", h.getPendingInventory)
		reports.GET("/dashboard", h.getDashboard)
	}
}

// getSummary godoc
// @Summary Ledger totals
// @Tags reports
// @Produce json
// @Success 200 {object} domain.Summary
// @Failure 500 {object} map[string]string "Failed to build summary"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	summary, err := h.ledgerService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getPartyLedger godoc
// @Summary Counterparty ledger
// @Description Per-party due, paid and balance on base amounts
// @Tags reports
// @Produce json
// @Param role path string true "buyer or seller"
// @Success 200 {object} dto.PartyLedgerResponse
// @Failure 400 {object} map[string]string "Unknown role"
// @Failure 500 {object} map[string]string "Failed to build ledger"
// @Security BearerAuth
// @Router /reports/ledger/{role} [get]
func (h *reportHandler) getPartyLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	role := domain.PartyRole(c.Param("role"))

	rows, err := h.ledgerService.PartyLedger(c.Request.Context(), role)
	if err != nil {
		respondError(c, logger, err, "Failed to build ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyLedgerResponse(role, rows))
}

// getExpenses godoc
// @Summary Expense breakdown
// @Tags reports
// @Produce json
// @Success 200 {object} domain.ExpenseBreakdown
// @Failure 500 {object} map[string]string "Failed to build expense breakdown"
// @Security BearerAuth
// @Router /reports/expenses [get]
func (h *reportHandler) getExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	breakdown, err := h.ledgerService.Expenses(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build expense breakdown")
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// getPendingInventory godoc
// @Summary Unsold purchase lots
// @Tags reports
// @Produce json
// @Success 200 {object} domain.PendingInventory
// @Failure 500 {object} map[string]string "Failed to build pending inventory"
// @Security BearerAuth
// @Router /reports/pending [get]
func (h *reportHandler) getPendingInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	inv, err := h.ledgerService.PendingInventory(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build pending inventory")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// getDashboard godoc
// @Summary Every report in one response
// @Tags reports
// @Produce json
// @Success 200 {object} domain.Dashboard
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	dash, err := h.ledgerService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dash)
}
