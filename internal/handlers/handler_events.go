package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	portssvc "github.com/hostfolio/property_mgmt_app/internal/core/ports/services"
	"github.com/hostfolio/property_mgmt_app/internal/core/services"
	"github.com/hostfolio/property_mgmt_app/internal/dto"
	"github.com/hostfolio/property_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventsHandler receives business events from the booking and expense
// subsystems and hands them to the auto-posting rules.
type eventsHandler struct {
	autoPostingService portssvc.AutoPostingSvcFacade
}

// newEventsHandler creates a new eventsHandler.
func newEventsHandler(aps portssvc.AutoPostingSvcFacade) *eventsHandler {
	return &eventsHandler{
		autoPostingService: aps,
	}
}

// registerEventRoutes registers the inbound event routes.
func registerEventRoutes(rg *gin.RouterGroup, autoPostingService portssvc.AutoPostingSvcFacade) {
	h := newEventsHandler(autoPostingService)

	events := rg.Group("/events")
	{
		events.POST("/booking-financed", h.bookingFinanced)
		events.POST("/booking-updated", h.bookingUpdated)
		events.POST("/expense-recorded", h.expenseRecorded)
	}
}

// bookingFinanced derives and persists the revenue entry for a booking.
// A failed derivation never fails the booking itself: the event is accepted
// and the failure logged for the back office to resolve.
func (h *eventsHandler) bookingFinanced(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BookingFinancedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BookingFinanced", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("booking_id", req.BookingID))

	entry, err := h.autoPostingService.GenerateBookingEntry(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.acceptDerivationFailure(c, logger, err, "booking")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// bookingUpdated regenerates the booking's draft entry after its financials
// changed. A posted prior entry is left untouched and returned as-is.
func (h *eventsHandler) bookingUpdated(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BookingFinancedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BookingUpdated", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("booking_id", req.BookingID))

	entry, err := h.autoPostingService.RegenerateBookingEntry(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.acceptDerivationFailure(c, logger, err, "booking")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// expenseRecorded derives and persists the accrual entry for an expense.
func (h *eventsHandler) expenseRecorded(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExpenseRecordedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExpenseRecorded", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("expense_id", req.ExpenseID))

	entry, err := h.autoPostingService.GenerateExpenseEntry(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.acceptDerivationFailure(c, logger, err, "expense")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// acceptDerivationFailure maps posting-rule failures to responses. Derivation
// failures are accepted with a warning so the source operation survives;
// anything else is a plain server error.
func (h *eventsHandler) acceptDerivationFailure(c *gin.Context, logger *slog.Logger, err error, rule string) {
	var derivErr *services.DerivationError
	if errors.As(err, &derivErr) {
		if errors.Is(err, services.ErrDuplicateJournal) {
			logger.Warn("Journal entry already exists for event", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Warn("Posting rule failed, event accepted without journal entry",
			slog.String("rule", rule),
			slog.String("error", err.Error()))
		c.JSON(http.StatusAccepted, gin.H{
			"status": "accepted",
			"detail": "journal entry could not be derived: " + derivErr.Err.Error(),
		})
		return
	}

	logger.Error("Failed to process event", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
}
