package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils/identifiers"
)

type studentService struct {
	BaseService
	studentRepo portsrepo.StudentRepositoryFacade
	sequence    portssvc.SequenceSvcFacade
}

// NewStudentService creates the student enrollment service.
func NewStudentService(studentRepo portsrepo.StudentRepositoryFacade, sequence portssvc.SequenceSvcFacade) portssvc.StudentSvcFacade {
	return &studentService{studentRepo: studentRepo, sequence: sequence}
}

var _ portssvc.StudentSvcFacade = (*studentService)(nil)

// CreateStudent enrolls a student, minting a student number in the course
// namespace for the current year.
func (s *studentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest, userID string) (*domain.Student, error) {
	if len(req.CourseCode) != 4 {
		return nil, fmt.Errorf("%w: course code must be 4 letters", apperrors.ErrValidation)
	}
	if req.TotalFees.IsNegative() {
		return nil, fmt.Errorf("%w: total fees cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	studentNumber, err := s.sequence.NextStudentNumber(ctx, now.Year(), req.CourseCode)
	if err != nil {
		s.LogError(ctx, err, "failed to mint student number", slog.String("course", req.CourseCode))
		return nil, err
	}

	student := domain.Student{
		StudentID:     uuid.NewString(),
		StudentNumber: studentNumber,
		Name:          req.Name,
		Phone:         req.Phone,
		GuardianName:  req.GuardianName,
		CourseCode:    identifiers.NormalizeLookupKey(req.CourseCode),
		Session:       req.Session,
		TotalFees:     req.TotalFees,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.studentRepo.SaveStudent(ctx, student); err != nil {
		s.LogError(ctx, err, "failed to save student", slog.String("student_number", studentNumber))
		return nil, err
	}

	s.LogInfo(ctx, "student enrolled", slog.String("student_number", studentNumber))
	return &student, nil
}

// UpdateStudent updates an existing student's details.
func (s *studentService) UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, userID string) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.GuardianName != nil {
		student.GuardianName = *req.GuardianName
	}
	if req.TotalFees != nil {
		if req.TotalFees.IsNegative() {
			return nil, fmt.Errorf("%w: total fees cannot be negative", apperrors.ErrValidation)
		}
		student.TotalFees = *req.TotalFees
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}
	student.LastUpdatedAt = time.Now().UTC()
	student.LastUpdatedBy = userID

	if err := s.studentRepo.UpdateStudent(ctx, *student); err != nil {
		s.LogError(ctx, err, "failed to update student", slog.String("student_id", studentID))
		return nil, err
	}
	return student, nil
}

// GetStudentByID retrieves a student by the internal identifier.
func (s *studentService) GetStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find student", slog.String("student_id", studentID))
		}
		return nil, err
	}
	return student, nil
}

// GetStudentByNumber retrieves a student by the minted student number.
func (s *studentService) GetStudentByNumber(ctx context.Context, studentNumber string) (*domain.Student, error) {
	return s.studentRepo.FindStudentByNumber(ctx, identifiers.NormalizeLookupKey(studentNumber))
}

// ListStudents retrieves a paginated, filterable list of students.
func (s *studentService) ListStudents(ctx context.Context, courseCode string, session string, limit int, offset int) ([]domain.Student, error) {
	students, err := s.studentRepo.ListStudents(ctx, courseCode, session, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list students")
		return nil, err
	}
	if students == nil {
		students = []domain.Student{}
	}
	return students, nil
}
