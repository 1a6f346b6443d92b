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

// teacherHandler handles HTTP requests for teacher records.
type teacherHandler struct {
	teacherService portssvc.TeacherSvcFacade
}

func newTeacherHandler(ts portssvc.TeacherSvcFacade) *teacherHandler {
	return &teacherHandler{teacherService: ts}
}

// registerTeacherRoutes registers routes related to teachers.
func registerTeacherRoutes(rg *gin.RouterGroup, teacherService portssvc.TeacherSvcFacade) {
	h := newTeacherHandler(teacherService)

	teachers := rg.Group("/teachers")
	{
		teachers.POST("", h.createTeacher)
		teachers.GET("", h.listTeachers)
		teachers.GET("/:id", h.getTeacher)
		teachers.PUT("/:id", h.updateTeacher)
	}
}

// createTeacher godoc
// @Summary Register a teacher
// @Description Registers a new teacher, minting a teacher number
// @Tags teachers
// @Accept json
// @Produce json
// @Param teacher body dto.CreateTeacherRequest true "Teacher details"
// @Success 201 {object} dto.TeacherResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to register teacher"
// @Security BearerAuth
// @Router /teachers [post]
func (h *teacherHandler) createTeacher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	teacher, err := h.teacherService.CreateTeacher(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register teacher", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register teacher"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeacherResponse(teacher))
}

// listTeachers godoc
// @Summary List teachers
// @Description Retrieves a paginated list of teachers
// @Tags teachers
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.TeacherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list teachers"
// @Security BearerAuth
// @Router /teachers [get]
func (h *teacherHandler) listTeachers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	teachers, err := h.teacherService.ListTeachers(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list teachers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list teachers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTeacherResponse(teachers))
}

// getTeacher godoc
// @Summary Get a teacher
// @Description Retrieves one teacher by internal identifier
// @Tags teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} dto.TeacherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Teacher not found"
// @Failure 500 {object} map[string]string "Failed to retrieve teacher"
// @Security BearerAuth
// @Router /teachers/{id} [get]
func (h *teacherHandler) getTeacher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teacherID := c.Param("id")

	teacher, err := h.teacherService.GetTeacherByID(c.Request.Context(), teacherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		} else {
			logger.Error("Failed to get teacher", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teacher"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTeacherResponse(teacher))
}

// updateTeacher godoc
// @Summary Update a teacher
// @Description Updates a teacher's details; omitted fields are left unchanged
// @Tags teachers
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param teacher body dto.UpdateTeacherRequest true "Fields to update"
// @Success 200 {object} dto.TeacherResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Teacher not found"
// @Failure 500 {object} map[string]string "Failed to update teacher"
// @Security BearerAuth
// @Router /teachers/{id} [put]
func (h *teacherHandler) updateTeacher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teacherID := c.Param("id")
	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	teacher, err := h.teacherService.UpdateTeacher(c.Request.Context(), teacherID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		} else {
			logger.Error("Failed to update teacher", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update teacher"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTeacherResponse(teacher))
}
