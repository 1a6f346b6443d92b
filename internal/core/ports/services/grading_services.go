package services

import (
	"context"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/rkinstitute/institute_mgmt_app/internal/dto"
)

// GradingReaderSvc defines read operations for exams and results
type GradingReaderSvc interface {
	// GetExamByID retrieves an exam by its identifier.
	GetExamByID(ctx context.Context, examID string) (*domain.Exam, error)

	// ListExams retrieves a paginated list of exams.
	ListExams(ctx context.Context, limit int, offset int) ([]domain.Exam, error)

	// GetMarksByExam retrieves all marks recorded for an exam.
	GetMarksByExam(ctx context.Context, examID string) ([]domain.ExamMark, error)

	// GetPerformanceDashboard aggregates pass/fail/absent counts per exam.
	// Exams with no recorded marks are omitted.
	GetPerformanceDashboard(ctx context.Context) ([]domain.ExamSummary, error)

	// GetPublicResult resolves a student number and exam to the public
	// result view.
	GetPublicResult(ctx context.Context, studentNumber string, examID string) (*dto.PublicResultResponse, error)
}

// GradingWriterSvc defines mutations for exams and marks
type GradingWriterSvc interface {
	// CreateExam persists a new exam.
	CreateExam(ctx context.Context, req dto.CreateExamRequest, userID string) (*domain.Exam, error)

	// UpsertMarks enters or corrects marks for an exam. Re-submitting a
	// (student, subject) entry overwrites the prior row.
	UpsertMarks(ctx context.Context, examID string, req dto.UpsertMarksRequest, userID string) ([]domain.ExamMark, error)
}

// GradingSvcFacade combines all grading service interfaces
type GradingSvcFacade interface {
	GradingReaderSvc
	GradingWriterSvc
}
