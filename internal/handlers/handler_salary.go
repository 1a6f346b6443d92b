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

// salaryHandler handles HTTP requests for payroll.
type salaryHandler struct {
	salaryService portssvc.SalarySvcFacade
}

func newSalaryHandler(ss portssvc.SalarySvcFacade) *salaryHandler {
	return &salaryHandler{salaryService: ss}
}

// registerSalaryRoutes registers routes related to salary records.
func registerSalaryRoutes(rg *gin.RouterGroup, salaryService portssvc.SalarySvcFacade) {
	h := newSalaryHandler(salaryService)

	salaries := rg.Group("/salaries")
	{
		salaries.POST("", h.generateSalary)
		salaries.GET("", h.listSalaries)
		salaries.GET("/:id", h.getSalary)
		salaries.PATCH("/:id/status", h.updateStatus)
	}
}

// generateSalary godoc
// @Summary Generate a salary slip
// @Description Generates the slip for one teacher and one month, minting a slip number and computing the net amount
// @Tags salaries
// @Accept json
// @Produce json
// @Param salary body dto.GenerateSalaryRequest true "Salary details"
// @Success 201 {object} dto.SalaryRecordResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Teacher not found"
// @Failure 409 {object} map[string]string "Salary already generated for this period"
// @Failure 500 {object} map[string]string "Failed to generate salary"
// @Security BearerAuth
// @Router /salaries [post]
func (h *salaryHandler) generateSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.salaryService.GenerateSalary(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate salary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate salary"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSalaryRecordResponse(record))
}

// listSalaries godoc
// @Summary List salary records
// @Description Retrieves a paginated list of salary records, filterable by teacher and year
// @Tags salaries
// @Produce json
// @Param teacherID query string false "Filter by teacher ID"
// @Param year query int false "Filter by year"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListSalaryRecordsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list salaries"
// @Security BearerAuth
// @Router /salaries [get]
func (h *salaryHandler) listSalaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSalaryRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.salaryService.ListSalaries(c.Request.Context(), params.TeacherID, params.Year, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list salary records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list salaries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSalaryRecordsResponse(records))
}

// getSalary godoc
// @Summary Get a salary record
// @Description Retrieves one salary record by its identifier
// @Tags salaries
// @Produce json
// @Param id path string true "Salary ID"
// @Success 200 {object} dto.SalaryRecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Salary record not found"
// @Failure 500 {object} map[string]string "Failed to retrieve salary"
// @Security BearerAuth
// @Router /salaries/{id} [get]
func (h *salaryHandler) getSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salaryID := c.Param("id")

	record, err := h.salaryService.GetSalaryByID(c.Request.Context(), salaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Salary record not found"})
		} else {
			logger.Error("Failed to get salary record", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve salary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSalaryRecordResponse(record))
}

// updateStatus godoc
// @Summary Update salary payment status
// @Description Moves a salary record between Pending and Paid
// @Tags salaries
// @Accept json
// @Produce json
// @Param id path string true "Salary ID"
// @Param status body dto.UpdateSalaryStatusRequest true "New status"
// @Success 200 {object} dto.SalaryRecordResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Salary record not found"
// @Failure 500 {object} map[string]string "Failed to update status"
// @Security BearerAuth
// @Router /salaries/{id}/status [patch]
func (h *salaryHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salaryID := c.Param("id")
	var req dto.UpdateSalaryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.salaryService.UpdateSalaryStatus(c.Request.Context(), salaryID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Salary record not found"})
		} else {
			logger.Error("Failed to update salary status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSalaryRecordResponse(record))
}
