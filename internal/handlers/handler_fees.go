package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
	"github.com/rkinstitute/institute_mgmt_app/internal/middleware"
)

// feeHandler handles HTTP requests for the fee ledger and reminders.
type feeHandler struct {
	paymentService      portssvc.PaymentSvcFacade
	notificationService portssvc.NotificationSvcFacade
}

func newFeeHandler(ps portssvc.PaymentSvcFacade, ns portssvc.NotificationSvcFacade) *feeHandler {
	return &feeHandler{paymentService: ps, notificationService: ns}
}

// RegisterFeeRoutes registers routes related to fee payments.
func RegisterFeeRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, notificationService portssvc.NotificationSvcFacade) {
	h := newFeeHandler(paymentService, notificationService)

	fees := rg.Group("/fees")
	{
		fees.POST("/payments", h.recordPayment)
		fees.GET("/payments", h.listPayments)
		fees.GET("/payments/:id", h.getPayment)
		fees.POST("/orders", h.createOrder)
		fees.POST("/reminders", h.sendReminders)
		fees.POST("/reconcile", h.reconcile)
	}
}

// recordPayment godoc
// @Summary Record a manual fee payment
// @Description Records a cash/cheque fee payment, minting a receipt number and computing the remaining balance
// @Tags fees
// @Accept json
// @Produce json
// @Param payment body dto.RecordFeePaymentRequest true "Payment details"
// @Success 201 {object} dto.FeePaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /fees/payments [post]
func (h *feeHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordFeePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.RecordManualPayment(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			logger.Error("Failed to record fee payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeePaymentResponse(payment))
}

// listPayments godoc
// @Summary List fee payments
// @Description Retrieves a paginated fee ledger, optionally filtered by student
// @Tags fees
// @Produce json
// @Param studentID query string false "Filter by student ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListFeePaymentsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /fees/payments [get]
func (h *feeHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListFeePaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), params.StudentID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list fee payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFeePaymentsResponse(payments))
}

// getPayment godoc
// @Summary Get a fee payment
// @Description Retrieves one fee payment by its identifier
// @Tags fees
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.FeePaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Security BearerAuth
// @Router /fees/payments/{id} [get]
func (h *feeHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		} else {
			logger.Error("Failed to get fee payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFeePaymentResponse(payment))
}

// createOrder godoc
// @Summary Create an online payment order
// @Description Opens a gateway order for an online fee payment; the ledger is only written after the capture webhook
// @Tags fees
// @Accept json
// @Produce json
// @Param order body dto.CreatePaymentOrderRequest true "Order details"
// @Success 201 {object} dto.PaymentOrderResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 502 {object} map[string]string "Gateway order creation failed"
// @Security BearerAuth
// @Router /fees/orders [post]
func (h *feeHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.paymentService.CreatePaymentOrder(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else if errors.Is(err, apperrors.ErrExternalService) {
			logger.Error("Gateway order creation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
		} else {
			logger.Error("Failed to create payment order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentOrderResponse(txn))
}

// sendReminders godoc
// @Summary Send fee reminders
// @Description Sends WhatsApp fee reminders to a batch of students; one failure never halts the batch
// @Tags fees
// @Accept json
// @Produce json
// @Param batch body dto.SendRemindersRequest true "Students and month"
// @Success 200 {object} dto.SendRemindersResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to send reminders"
// @Security BearerAuth
// @Router /fees/reminders [post]
func (h *feeHandler) sendReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SendRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.notificationService.SendFeeReminders(c.Request.Context(), req, userID)
	if err != nil {
		logger.Error("Failed to send fee reminders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reminders"})
		return
	}

	c.JSON(http.StatusOK, dto.SendRemindersResponse{
		SuccessCount: summary.SuccessCount,
		FailCount:    summary.FailCount,
	})
}

// reconcile godoc
// @Summary Reconcile unledgered payments
// @Description Runs the reconciliation sweep that ledgers captured gateway transactions still missing a fee payment row
// @Tags fees
// @Produce json
// @Success 200 {object} dto.ReconcileResponse
// @Failure 500 {object} map[string]string "Reconciliation failed"
// @Security BearerAuth
// @Router /fees/reconcile [post]
func (h *feeHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fixed, err := h.paymentService.ReconcileUnledgered(c.Request.Context())
	if err != nil {
		logger.Error("Reconciliation sweep failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{Fixed: fixed})
}
