package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/middleware"
)

// publicHandler serves the unauthenticated verification endpoints. Lookups
// are exact match on normalized identifiers and responses carry no contact
// details, so enumeration yields nothing sensitive.
type publicHandler struct {
	paymentService     portssvc.PaymentSvcFacade
	certificateService portssvc.CertificateSvcFacade
	gradingService     portssvc.GradingSvcFacade
}

// registerPublicRoutes registers the public verification routes.
func registerPublicRoutes(
	rg *gin.RouterGroup,
	paymentService portssvc.PaymentSvcFacade,
	certificateService portssvc.CertificateSvcFacade,
	gradingService portssvc.GradingSvcFacade,
) {
	h := &publicHandler{
		paymentService:     paymentService,
		certificateService: certificateService,
		gradingService:     gradingService,
	}

	rg.GET("/receipts/:number", h.verifyReceipt)
	rg.GET("/certificates/:number", h.verifyCertificate)
	rg.GET("/results/:studentNumber/:examID", h.publicResult)
}

// verifyReceipt godoc
// @Summary Verify a fee receipt
// @Description Resolves a receipt number to its public view for authenticity checks
// @Tags public
// @Produce json
// @Param number path string true "Receipt number"
// @Success 200 {object} dto.ReceiptVerificationResponse
// @Failure 400 {object} map[string]string "Empty receipt number"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /public/receipts/{number} [get]
func (h *publicHandler) verifyReceipt(c *gin.Context) {
	resp, err := h.paymentService.VerifyReceipt(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.respondLookupError(c, err, "Receipt not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// verifyCertificate godoc
// @Summary Verify a certificate
// @Description Resolves a certificate number to its public view for authenticity checks
// @Tags public
// @Produce json
// @Param number path string true "Certificate number"
// @Success 200 {object} dto.CertificateVerificationResponse
// @Failure 400 {object} map[string]string "Empty certificate number"
// @Failure 404 {object} map[string]string "Certificate not found"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /public/certificates/{number} [get]
func (h *publicHandler) verifyCertificate(c *gin.Context) {
	resp, err := h.certificateService.VerifyCertificate(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.respondLookupError(c, err, "Certificate not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// publicResult godoc
// @Summary Look up an exam result
// @Description Resolves a student number and exam to the public result view
// @Tags public
// @Produce json
// @Param studentNumber path string true "Student number"
// @Param examID path string true "Exam ID"
// @Success 200 {object} dto.PublicResultResponse
// @Failure 400 {object} map[string]string "Empty student number"
// @Failure 404 {object} map[string]string "Result not found"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /public/results/{studentNumber}/{examID} [get]
func (h *publicHandler) publicResult(c *gin.Context) {
	resp, err := h.gradingService.GetPublicResult(c.Request.Context(), c.Param("studentNumber"), c.Param("examID"))
	if err != nil {
		h.respondLookupError(c, err, "Result not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// respondLookupError maps a verification failure to its response. Not-found
// and validation failures share deliberately terse messages.
func (h *publicHandler) respondLookupError(c *gin.Context, err error, notFoundMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Public lookup failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
	}
}
