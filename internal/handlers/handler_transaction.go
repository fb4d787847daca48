package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/bookkeeping_app/internal/apperrors"
	portssvc "github.com/ledgerline/bookkeeping_app/internal/core/ports/services"
	"github.com/ledgerline/bookkeeping_app/internal/dto"
	"github.com/ledgerline/bookkeeping_app/internal/middleware"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a new transaction
// @Description Validates and stores an income or expense record, then refreshes the view session
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "Store unreachable"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created successfully", slog.String("transaction_id", created.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(created))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves one page of transactions matching the given filters, newest first
// @Tags transactions
// @Produce  json
// @Param   page query int false "1-based page number" default(1)
// @Param   pageSize query int false "Records per page" default(10)
// @Param   from query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param   to query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param   type query string false "Income or Expense"
// @Param   category query string false "Case-insensitive category substring"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 502 {object} map[string]string "Store unreachable"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(page, params.Page, params.PageSize))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies a partial patch to an existing record, then refreshes the view session
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 502 {object} map[string]string "Store unreachable"
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to update transaction")
		return
	}

	logger.Info("Transaction updated successfully", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(updated))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a record, then refreshes the view session. Deleting an absent id still succeeds.
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 502 {object} map[string]string "Store unreachable"
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		respondTransactionError(c, logger, err, "Failed to delete transaction")
		return
	}

	logger.Info("Transaction deleted successfully", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

// respondTransactionError maps service errors onto HTTP statuses.
func respondTransactionError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Transaction not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, apperrors.ErrNetwork):
		logger.Warn("Store unreachable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Store temporarily unreachable. Please retry."})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
