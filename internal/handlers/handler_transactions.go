package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests that read and write ledger rows.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to purchases, sales and payments.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(ts)

	rg.POST("/purchases", h.recordPurchase)
	rg.POST("/sales", h.recordSale)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.GET("/pending", h.listPending)
		txns.GET("/:id", h.getTransaction)
		txns.PATCH("/:id/payment", h.updatePayment)
		txns.DELETE("/:id", h.deleteTransaction)
	}
}

// recordPurchase godoc
// @Summary Record a purchase
// @Description Validates and prices a BUY. The row starts PENDING until a sale settles it.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   purchase body dto.RecordPurchaseRequest true "Purchase details"
// @Success 201 {object} dto.RecordTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or overpayment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record purchase"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /purchases [post]
func (h *transactionHandler) recordPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	id, err := h.transactionService.RecordPurchase(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to record purchase")
		return
	}

	c.JSON(http.StatusCreated, dto.RecordTransactionResponse{ID: id})
}

// recordSale godoc
// @Summary Record a sale
// @Description Validates and prices a SELL. When linkedPurchaseID is given the pending purchase is marked SOLD atomically.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   sale body dto.RecordSaleRequest true "Sale details"
// @Success 201 {object} dto.RecordTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or overpayment"
// @Failure 409 {object} map[string]string "Linked purchase cannot be settled"
// @Failure 500 {object} map[string]string "Failed to record sale"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /sales [post]
func (h *transactionHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	id, err := h.transactionService.RecordSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to record sale")
		return
	}

	c.JSON(http.StatusCreated, dto.RecordTransactionResponse{ID: id})
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists ledger rows newest first with optional filters and cursor pagination.
// @Tags transactions
// @Produce  json
// @Param   type query string false "BUY or SELL"
// @Param   status query string false "PENDING, SOLD or COMPLETED"
// @Param   item query string false "Item name substring"
// @Param   party query string false "Exact buyer or seller name"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listPending godoc
// @Summary List pending purchases
// @Tags transactions
// @Produce  json
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} map[string]string "Failed to list pending purchases"
// @Security BearerAuth
// @Router /transactions/pending [get]
func (h *transactionHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	txns, err := h.transactionService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list pending purchases")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// updatePayment godoc
// @Summary Update the amount paid
// @Description Replaces amount_paid. It may not exceed price per unit times quantity.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Param   payment body dto.UpdatePaymentRequest true "New cumulative amount paid"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to update payment"
// @Security BearerAuth
// @Router /transactions/{id}/payment [patch]
func (h *transactionHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.transactionService.UpdatePayment(c.Request.Context(), id, req.AmountPaid); err != nil {
		respondError(c, logger, err, "Failed to update payment")
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Hard-deletes a row. Sales linked to a deleted purchase keep their data.
// @Tags transactions
// @Param   id path int true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}
