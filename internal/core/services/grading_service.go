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

type gradingService struct {
	BaseService
	examRepo    portsrepo.ExamRepositoryFacade
	studentRepo portsrepo.StudentRepositoryFacade
}

// NewGradingService creates the exam and results service.
func NewGradingService(examRepo portsrepo.ExamRepositoryFacade, studentRepo portsrepo.StudentRepositoryFacade) portssvc.GradingSvcFacade {
	return &gradingService{examRepo: examRepo, studentRepo: studentRepo}
}

var _ portssvc.GradingSvcFacade = (*gradingService)(nil)

// CreateExam persists a new exam.
func (s *gradingService) CreateExam(ctx context.Context, req dto.CreateExamRequest, userID string) (*domain.Exam, error) {
	if req.PassingMarks > req.TotalMarks {
		return nil, fmt.Errorf("%w: passing marks cannot exceed total marks", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	exam := domain.Exam{
		ExamID:       uuid.NewString(),
		Title:        req.Title,
		Date:         req.Date,
		CourseCode:   req.CourseCode,
		Session:      req.Session,
		TotalMarks:   req.TotalMarks,
		PassingMarks: req.PassingMarks,
		BranchID:     req.BranchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.examRepo.SaveExam(ctx, exam); err != nil {
		s.LogError(ctx, err, "failed to save exam", slog.String("title", req.Title))
		return nil, err
	}
	s.LogInfo(ctx, "exam created", slog.String("exam_id", exam.ExamID))
	return &exam, nil
}

// GetExamByID retrieves an exam by its identifier.
func (s *gradingService) GetExamByID(ctx context.Context, examID string) (*domain.Exam, error) {
	exam, err := s.examRepo.FindExamByID(ctx, examID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find exam", slog.String("exam_id", examID))
		}
		return nil, err
	}
	return exam, nil
}

// ListExams retrieves a paginated list of exams.
func (s *gradingService) ListExams(ctx context.Context, limit int, offset int) ([]domain.Exam, error) {
	exams, err := s.examRepo.ListExams(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list exams")
		return nil, err
	}
	if exams == nil {
		exams = []domain.Exam{}
	}
	return exams, nil
}

// UpsertMarks enters or corrects marks for an exam. Every entry is validated
// against the exam's total before anything is written.
func (s *gradingService) UpsertMarks(ctx context.Context, examID string, req dto.UpsertMarksRequest, userID string) ([]domain.ExamMark, error) {
	exam, err := s.examRepo.FindExamByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	marks := make([]domain.ExamMark, len(req.Marks))
	for i, entry := range req.Marks {
		if entry.MarksObtained < 0 || entry.MarksObtained > exam.TotalMarks {
			return nil, fmt.Errorf("%w: marks %.2f out of range for student %s", apperrors.ErrValidation, entry.MarksObtained, entry.StudentID)
		}
		if _, err := s.studentRepo.FindStudentByID(ctx, entry.StudentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: student %s not found", apperrors.ErrValidation, entry.StudentID)
			}
			return nil, err
		}
		marksObtained := entry.MarksObtained
		if entry.IsAbsent {
			marksObtained = 0
		}
		marks[i] = domain.ExamMark{
			ExamID:        examID,
			StudentID:     entry.StudentID,
			SubjectName:   entry.SubjectName,
			MarksObtained: marksObtained,
			IsAbsent:      entry.IsAbsent,
			Remarks:       entry.Remarks,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.examRepo.UpsertMarks(ctx, marks); err != nil {
		s.LogError(ctx, err, "failed to upsert marks", slog.String("exam_id", examID))
		return nil, err
	}
	s.LogInfo(ctx, "marks recorded", slog.String("exam_id", examID), slog.Int("count", len(marks)))
	return marks, nil
}

// GetMarksByExam retrieves all marks recorded for an exam.
func (s *gradingService) GetMarksByExam(ctx context.Context, examID string) ([]domain.ExamMark, error) {
	if _, err := s.examRepo.FindExamByID(ctx, examID); err != nil {
		return nil, err
	}
	marks, err := s.examRepo.FindMarksByExam(ctx, examID)
	if err != nil {
		s.LogError(ctx, err, "failed to load marks", slog.String("exam_id", examID))
		return nil, err
	}
	if marks == nil {
		marks = []domain.ExamMark{}
	}
	return marks, nil
}

// GetPerformanceDashboard aggregates one summary per exam. Exams with no
// recorded marks produce no summary at all.
func (s *gradingService) GetPerformanceDashboard(ctx context.Context) ([]domain.ExamSummary, error) {
	exams, err := s.examRepo.ListExams(ctx, 1000, 0)
	if err != nil {
		s.LogError(ctx, err, "failed to list exams for dashboard")
		return nil, err
	}

	summaries := make([]domain.ExamSummary, 0, len(exams))
	for _, exam := range exams {
		marks, err := s.examRepo.FindMarksByExam(ctx, exam.ExamID)
		if err != nil {
			s.LogError(ctx, err, "failed to load marks for dashboard", slog.String("exam_id", exam.ExamID))
			return nil, err
		}
		if summary := domain.SummarizeMarks(exam, marks); summary != nil {
			summaries = append(summaries, *summary)
		}
	}
	return summaries, nil
}

// GetPublicResult resolves a student number and exam to the public result view.
func (s *gradingService) GetPublicResult(ctx context.Context, studentNumber string, examID string) (*dto.PublicResultResponse, error) {
	normalized := identifiers.NormalizeLookupKey(studentNumber)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty student number", apperrors.ErrValidation)
	}

	student, err := s.studentRepo.FindStudentByNumber(ctx, normalized)
	if err != nil {
		return nil, err
	}
	exam, err := s.examRepo.FindExamByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	marks, err := s.examRepo.FindMarksByExamAndStudent(ctx, examID, student.StudentID)
	if err != nil {
		return nil, err
	}
	if len(marks) == 0 {
		return nil, apperrors.ErrNotFound
	}

	resp := dto.ToPublicResultResponse(*exam, student, marks)
	return &resp, nil
}
