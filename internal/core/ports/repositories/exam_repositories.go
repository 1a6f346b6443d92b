package repositories

import (
	"context"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// ExamReader defines read operations for exams
type ExamReader interface {
	// FindExamByID retrieves an exam by its identifier.
	FindExamByID(ctx context.Context, examID string) (*domain.Exam, error)

	// ListExams retrieves a paginated list of exams, newest date first.
	ListExams(ctx context.Context, limit int, offset int) ([]domain.Exam, error)
}

// ExamWriter defines write operations for exams
type ExamWriter interface {
	// SaveExam persists a new exam.
	SaveExam(ctx context.Context, exam domain.Exam) error
}

// ExamMarkReader defines read operations for recorded marks
type ExamMarkReader interface {
	// FindMarksByExam retrieves every mark recorded for an exam.
	FindMarksByExam(ctx context.Context, examID string) ([]domain.ExamMark, error)

	// FindMarksByExamAndStudent retrieves one student's marks in one exam.
	FindMarksByExamAndStudent(ctx context.Context, examID string, studentID string) ([]domain.ExamMark, error)
}

// ExamMarkWriter defines write operations for recorded marks
type ExamMarkWriter interface {
	// UpsertMarks inserts or overwrites marks keyed on
	// (exam, student, subject). Corrections are plain re-entry.
	UpsertMarks(ctx context.Context, marks []domain.ExamMark) error
}

// ExamRepositoryFacade combines all exam-related repository interfaces
type ExamRepositoryFacade interface {
	ExamReader
	ExamWriter
	ExamMarkReader
	ExamMarkWriter
}

// ExamRepositoryWithTx extends the facade with transaction capabilities
type ExamRepositoryWithTx interface {
	ExamRepositoryFacade
	TransactionManager
}
