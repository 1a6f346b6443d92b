package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
	"github.com/rkinstitute/institute_mgmt_app/internal/middleware"
	"github.com/rkinstitute/institute_mgmt_app/internal/platform/config"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils"
)

const gatewaySignatureHeader = "X-Razorpay-Signature"

// webhookHandler receives payment gateway events.
type webhookHandler struct {
	paymentService portssvc.PaymentSvcFacade
	webhookSecret  string
}

func newWebhookHandler(ps portssvc.PaymentSvcFacade, secret string) *webhookHandler {
	return &webhookHandler{paymentService: ps, webhookSecret: secret}
}

// RegisterWebhookRoutes registers the gateway webhook endpoint. It is
// unauthenticated; the HMAC signature over the raw body is the trust anchor.
func RegisterWebhookRoutes(r *gin.Engine, cfg *config.Config, paymentService portssvc.PaymentSvcFacade) {
	h := newWebhookHandler(paymentService, cfg.GatewayWebhookSecret)
	r.POST("/webhooks/payments", h.handlePaymentWebhook)
}

// handlePaymentWebhook godoc
// @Summary Receive a payment gateway webhook
// @Description Verifies the gateway HMAC signature over the raw body, then applies the event. Duplicate deliveries are acknowledged without re-applying.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Razorpay-Signature header string true "HMAC-SHA256 of the raw body"
// @Success 200 {object} dto.WebhookAckResponse
// @Failure 400 {object} map[string]string "Missing or invalid signature, or malformed body"
// @Failure 404 {object} map[string]string "Unknown gateway order"
// @Failure 500 {object} map[string]string "Failed to process event"
// @Router /webhooks/payments [post]
func (h *webhookHandler) handlePaymentWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader(gatewaySignatureHeader)
	if !utils.VerifyWebhookSignature(body, signature, h.webhookSecret) {
		logger.Warn("Webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var event dto.GatewayWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Warn("Failed to decode webhook body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed webhook body"})
		return
	}

	alreadyProcessed, err := h.paymentService.ProcessWebhookEvent(c.Request.Context(), event, signature)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Webhook for unknown order", slog.String("order_id", event.Payload.Payment.Entity.OrderID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown order"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to process webhook event", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
		return
	}

	if alreadyProcessed {
		c.JSON(http.StatusOK, gin.H{"message": "Already processed"})
		return
	}
	c.JSON(http.StatusOK, dto.WebhookAckResponse{Status: "ok"})
}
