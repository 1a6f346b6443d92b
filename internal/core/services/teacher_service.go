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
)

type teacherService struct {
	BaseService
	teacherRepo portsrepo.TeacherRepositoryFacade
	sequence    portssvc.SequenceSvcFacade
}

// NewTeacherService creates the teacher registry service.
func NewTeacherService(teacherRepo portsrepo.TeacherRepositoryFacade, sequence portssvc.SequenceSvcFacade) portssvc.TeacherSvcFacade {
	return &teacherService{teacherRepo: teacherRepo, sequence: sequence}
}

var _ portssvc.TeacherSvcFacade = (*teacherService)(nil)

// CreateTeacher registers a teacher, minting a teacher number for the year.
func (s *teacherService) CreateTeacher(ctx context.Context, req dto.CreateTeacherRequest, userID string) (*domain.Teacher, error) {
	if req.BasicSalary.IsNegative() {
		return nil, fmt.Errorf("%w: basic salary cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	teacherNumber, err := s.sequence.NextTeacherNumber(ctx, now.Year())
	if err != nil {
		s.LogError(ctx, err, "failed to mint teacher number")
		return nil, err
	}

	teacher := domain.Teacher{
		TeacherID:     uuid.NewString(),
		TeacherNumber: teacherNumber,
		Name:          req.Name,
		Phone:         req.Phone,
		Subject:       req.Subject,
		BasicSalary:   req.BasicSalary,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.teacherRepo.SaveTeacher(ctx, teacher); err != nil {
		s.LogError(ctx, err, "failed to save teacher", slog.String("teacher_number", teacherNumber))
		return nil, err
	}

	s.LogInfo(ctx, "teacher registered", slog.String("teacher_number", teacherNumber))
	return &teacher, nil
}

// UpdateTeacher updates an existing teacher's details.
func (s *teacherService) UpdateTeacher(ctx context.Context, teacherID string, req dto.UpdateTeacherRequest, userID string) (*domain.Teacher, error) {
	teacher, err := s.teacherRepo.FindTeacherByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}
	if req.Subject != nil {
		teacher.Subject = *req.Subject
	}
	if req.BasicSalary != nil {
		if req.BasicSalary.IsNegative() {
			return nil, fmt.Errorf("%w: basic salary cannot be negative", apperrors.ErrValidation)
		}
		teacher.BasicSalary = *req.BasicSalary
	}
	if req.IsActive != nil {
		teacher.IsActive = *req.IsActive
	}
	teacher.LastUpdatedAt = time.Now().UTC()
	teacher.LastUpdatedBy = userID

	if err := s.teacherRepo.UpdateTeacher(ctx, *teacher); err != nil {
		s.LogError(ctx, err, "failed to update teacher", slog.String("teacher_id", teacherID))
		return nil, err
	}
	return teacher, nil
}

// GetTeacherByID retrieves a teacher by the internal identifier.
func (s *teacherService) GetTeacherByID(ctx context.Context, teacherID string) (*domain.Teacher, error) {
	teacher, err := s.teacherRepo.FindTeacherByID(ctx, teacherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find teacher", slog.String("teacher_id", teacherID))
		}
		return nil, err
	}
	return teacher, nil
}

// ListTeachers retrieves a paginated list of teachers.
func (s *teacherService) ListTeachers(ctx context.Context, limit int, offset int) ([]domain.Teacher, error) {
	teachers, err := s.teacherRepo.ListTeachers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list teachers")
		return nil, err
	}
	if teachers == nil {
		teachers = []domain.Teacher{}
	}
	return teachers, nil
}
