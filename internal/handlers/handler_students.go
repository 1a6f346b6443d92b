package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
	"github.com/rkinstitute/institute_mgmt_app/internal/middleware"
)

// studentHandler handles HTTP requests for students and their certificates.
type studentHandler struct {
	studentService     portssvc.StudentSvcFacade
	certificateService portssvc.CertificateSvcFacade
}

func newStudentHandler(ss portssvc.StudentSvcFacade, cs portssvc.CertificateSvcFacade) *studentHandler {
	return &studentHandler{studentService: ss, certificateService: cs}
}

// registerStudentRoutes registers routes related to students.
func registerStudentRoutes(rg *gin.RouterGroup, studentService portssvc.StudentSvcFacade, certificateService portssvc.CertificateSvcFacade) {
	h := newStudentHandler(studentService, certificateService)

	students := rg.Group("/students")
	{
		students.POST("", h.createStudent)
		students.GET("", h.listStudents)
		students.GET("/:id", h.getStudent)
		students.PUT("/:id", h.updateStudent)
		students.POST("/:id/certificate", h.issueCertificate)
	}
}

// createStudent godoc
// @Summary Enroll a student
// @Description Enrolls a new student, minting a student number in the course namespace
// @Tags students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to enroll student"
// @Security BearerAuth
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to enroll student", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll student"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToStudentResponse(student))
}

// listStudents godoc
// @Summary List students
// @Description Retrieves a paginated list of students, filterable by course and session
// @Tags students
// @Produce json
// @Param courseCode query string false "Filter by course code"
// @Param session query string false "Filter by session"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListStudentsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list students"
// @Security BearerAuth
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListStudentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), params.CourseCode, params.Session, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list students", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list students"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListStudentsResponse(students))
}

// getStudent godoc
// @Summary Get a student
// @Description Retrieves one student by internal identifier
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 500 {object} map[string]string "Failed to retrieve student"
// @Security BearerAuth
// @Router /students/{id} [get]
func (h *studentHandler) getStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("id")

	student, err := h.studentService.GetStudentByID(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			logger.Error("Failed to get student", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve student"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// updateStudent godoc
// @Summary Update a student
// @Description Updates a student's details; omitted fields are left unchanged
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param student body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 500 {object} map[string]string "Failed to update student"
// @Security BearerAuth
// @Router /students/{id} [put]
func (h *studentHandler) updateStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("id")
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), studentID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			logger.Error("Failed to update student", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// issueCertificate godoc
// @Summary Issue a completion certificate
// @Description Issues a course-completion certificate for a student; one per student per course
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param certificate body dto.IssueCertificateRequest false "Optional issue date"
// @Success 201 {object} dto.CertificateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 409 {object} map[string]string "Certificate already issued"
// @Failure 500 {object} map[string]string "Failed to issue certificate"
// @Security BearerAuth
// @Router /students/{id}/certificate [post]
func (h *studentHandler) issueCertificate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	// The student comes from the path; the body only carries the optional
	// issue date.
	var body struct {
		IssueDate *time.Time `json:"issueDate"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}
	req := dto.IssueCertificateRequest{StudentID: c.Param("id"), IssueDate: body.IssueDate}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	certificate, err := h.certificateService.IssueCertificate(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to issue certificate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue certificate"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCertificateResponse(certificate))
}
