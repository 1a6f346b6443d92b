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

// examHandler handles HTTP requests for exams, marks and the dashboard.
type examHandler struct {
	gradingService portssvc.GradingSvcFacade
}

func newExamHandler(gs portssvc.GradingSvcFacade) *examHandler {
	return &examHandler{gradingService: gs}
}

// registerExamRoutes registers routes related to exams and grading.
func registerExamRoutes(rg *gin.RouterGroup, gradingService portssvc.GradingSvcFacade) {
	h := newExamHandler(gradingService)

	exams := rg.Group("/exams")
	{
		exams.POST("", h.createExam)
		exams.GET("", h.listExams)
		exams.GET("/:id", h.getExam)
		exams.PUT("/:id/marks", h.upsertMarks)
		exams.GET("/:id/marks", h.getMarks)
	}
	rg.GET("/dashboard/performance", h.performanceDashboard)
}

// createExam godoc
// @Summary Create an exam
// @Description Creates a new exam with its total and passing marks
// @Tags exams
// @Accept json
// @Produce json
// @Param exam body dto.CreateExamRequest true "Exam details"
// @Success 201 {object} dto.ExamResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create exam"
// @Security BearerAuth
// @Router /exams [post]
func (h *examHandler) createExam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	exam, err := h.gradingService.CreateExam(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create exam", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exam"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExamResponse(exam))
}

// listExams godoc
// @Summary List exams
// @Description Retrieves a paginated list of exams, newest date first
// @Tags exams
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.ExamResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list exams"
// @Security BearerAuth
// @Router /exams [get]
func (h *examHandler) listExams(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	exams, err := h.gradingService.ListExams(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list exams", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exams"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExamResponse(exams))
}

// getExam godoc
// @Summary Get an exam
// @Description Retrieves one exam by its identifier
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Exam not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exam"
// @Security BearerAuth
// @Router /exams/{id} [get]
func (h *examHandler) getExam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	examID := c.Param("id")

	exam, err := h.gradingService.GetExamByID(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
		} else {
			logger.Error("Failed to get exam", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exam"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExamResponse(exam))
}

// upsertMarks godoc
// @Summary Enter or correct marks
// @Description Enters marks for an exam; re-submitting a (student, subject) entry overwrites the prior row
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param marks body dto.UpsertMarksRequest true "Marks entries"
// @Success 200 {array} dto.ExamMarkResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Exam not found"
// @Failure 500 {object} map[string]string "Failed to record marks"
// @Security BearerAuth
// @Router /exams/{id}/marks [put]
func (h *examHandler) upsertMarks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	examID := c.Param("id")
	var req dto.UpsertMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	marks, err := h.gradingService.UpsertMarks(c.Request.Context(), examID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
		} else {
			logger.Error("Failed to upsert marks", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record marks"})
		}
		return
	}

	exam, err := h.gradingService.GetExamByID(c.Request.Context(), examID)
	if err != nil {
		logger.Error("Failed to reload exam after marks upsert", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record marks"})
		return
	}

	responses := make([]dto.ExamMarkResponse, len(marks))
	for i := range marks {
		responses[i] = dto.ToExamMarkResponse(*exam, &marks[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getMarks godoc
// @Summary Get marks for an exam
// @Description Retrieves every mark recorded for an exam
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {array} dto.ExamMarkResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Exam not found"
// @Failure 500 {object} map[string]string "Failed to retrieve marks"
// @Security BearerAuth
// @Router /exams/{id}/marks [get]
func (h *examHandler) getMarks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	examID := c.Param("id")

	exam, err := h.gradingService.GetExamByID(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
		} else {
			logger.Error("Failed to get exam", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve marks"})
		}
		return
	}

	marks, err := h.gradingService.GetMarksByExam(c.Request.Context(), examID)
	if err != nil {
		logger.Error("Failed to get marks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve marks"})
		return
	}

	responses := make([]dto.ExamMarkResponse, len(marks))
	for i := range marks {
		responses[i] = dto.ToExamMarkResponse(*exam, &marks[i])
	}
	c.JSON(http.StatusOK, responses)
}

// performanceDashboard godoc
// @Summary Performance dashboard
// @Description Aggregates pass/fail/absent counts per exam; exams with no recorded marks are omitted
// @Tags exams
// @Produce json
// @Success 200 {array} dto.ExamSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /dashboard/performance [get]
func (h *examHandler) performanceDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summaries, err := h.gradingService.GetPerformanceDashboard(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build performance dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	responses := make([]dto.ExamSummaryResponse, len(summaries))
	for i := range summaries {
		responses[i] = dto.ToExamSummaryResponse(&summaries[i])
	}
	c.JSON(http.StatusOK, responses)
}
