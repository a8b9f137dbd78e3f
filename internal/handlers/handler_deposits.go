package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hostfolio/property_mgmt_app/internal/apperrors"
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portssvc "github.com/hostfolio/property_mgmt_app/internal/core/ports/services"
	"github.com/hostfolio/property_mgmt_app/internal/core/services"
	"github.com/hostfolio/property_mgmt_app/internal/dto"
	"github.com/hostfolio/property_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// depositHandler handles HTTP requests for security-deposit movements.
type depositHandler struct {
	autoPostingService portssvc.AutoPostingSvcFacade
}

// newDepositHandler creates a new depositHandler.
func newDepositHandler(aps portssvc.AutoPostingSvcFacade) *depositHandler {
	return &depositHandler{
		autoPostingService: aps,
	}
}

// registerDepositRoutes registers routes related to security deposits.
func registerDepositRoutes(rg *gin.RouterGroup, autoPostingService portssvc.AutoPostingSvcFacade) {
	h := newDepositHandler(autoPostingService)

	deposits := rg.Group("/deposits")
	{
		deposits.POST("/transactions", h.recordTransaction)
		deposits.GET("/tenancies/:tenancyID/transactions", h.listTransactions)
		deposits.GET("/summary", h.getSummary)
	}
}

// recordTransaction records a deposit movement against a tenancy, posting its
// journal entry immediately.
func (h *depositHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordDepositTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("tenancy_id", req.TenancyID),
		slog.String("type", string(req.Type)))
	logger.Info("Received request to record deposit transaction")

	txn, err := h.autoPostingService.RecordDepositTransaction(c.Request.Context(), req.ToDomain())
	if err != nil {
		var derivErr *services.DerivationError
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Tenancy not found for deposit transaction")
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenancy not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error recording deposit transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &derivErr):
			// Deposit movements are user-initiated, so a failed posting rule
			// fails the request instead of being swallowed.
			logger.Error("Deposit posting rule failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": derivErr.Err.Error()})
		default:
			logger.Error("Failed to record deposit transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record deposit transaction"})
		}
		return
	}

	logger.Info("Deposit transaction recorded successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToDepositTransactionResponses([]domain.DepositTransaction{*txn})[0])
}

// listTransactions retrieves a tenancy's deposit history.
func (h *depositHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenancyID := c.Param("tenancyID")

	logger = logger.With(slog.String("tenancy_id", tenancyID))

	txns, err := h.autoPostingService.ListDepositTransactions(c.Request.Context(), tenancyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Tenancy not found for deposit history")
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenancy not found"})
			return
		}
		logger.Error("Failed to list deposit transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list deposit transactions"})
		return
	}

	logger.Debug("Deposit transactions listed successfully", slog.Int("count", len(txns)))
	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToDepositTransactionResponses(txns)})
}

// getSummary aggregates the deposit position of every tenancy holding a
// security deposit, optionally filtered by status.
func (h *depositHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status *domain.DepositStatus
	if s := c.Query("status"); s != "" {
		ds := domain.DepositStatus(s)
		switch ds {
		case domain.DepositPending, domain.DepositReceived, domain.DepositPartiallyRefunded,
			domain.DepositRefunded, domain.DepositForfeited:
			status = &ds
		default:
			logger.Warn("Invalid deposit status filter", slog.String("status", s))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deposit status: " + s})
			return
		}
	}

	summaries, err := h.autoPostingService.SummarizeDeposits(c.Request.Context(), status)
	if err != nil {
		logger.Error("Failed to summarize deposits from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize deposits"})
		return
	}

	logger.Debug("Deposit summary generated successfully", slog.Int("count", len(summaries)))
	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}
