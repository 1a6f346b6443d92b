package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	"github.com/rkinstitute/institute_mgmt_app/internal/models"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils/mapping"
)

const examColumns = `exam_id, title, date, course_code, session, total_marks, passing_marks, branch_id, created_at, created_by, last_updated_at, last_updated_by`
const examMarkColumns = `exam_id, student_id, subject_name, marks_obtained, is_absent, remarks, created_at, created_by, last_updated_at, last_updated_by`

type PgxExamRepository struct {
	BaseRepository
}

// newPgxExamRepository creates a new repository for exams and marks.
func newPgxExamRepository(pool *pgxpool.Pool) *PgxExamRepository {
	return &PgxExamRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExamRepository implements the facade
var _ portsrepo.ExamRepositoryWithTx = (*PgxExamRepository)(nil)

func scanExam(row pgx.Row) (*models.Exam, error) {
	var m models.Exam
	err := row.Scan(
		&m.ExamID,
		&m.Title,
		&m.Date,
		&m.CourseCode,
		&m.Session,
		&m.TotalMarks,
		&m.PassingMarks,
		&m.BranchID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveExam inserts a new exam.
func (r *PgxExamRepository) SaveExam(ctx context.Context, exam domain.Exam) error {
	m := mapping.ToModelExam(exam)

	query := `
		INSERT INTO exams (` + examColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExamID,
		m.Title,
		m.Date,
		m.CourseCode,
		m.Session,
		m.TotalMarks,
		m.PassingMarks,
		m.BranchID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save exam %s: %w", m.ExamID, err)
	}
	return nil
}

// FindExamByID retrieves an exam by its identifier.
func (r *PgxExamRepository) FindExamByID(ctx context.Context, examID string) (*domain.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE exam_id = $1;`

	m, err := scanExam(r.Pool.QueryRow(ctx, query, examID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exam %s: %w", examID, err)
	}
	d := mapping.ToDomainExam(*m)
	return &d, nil
}

// ListExams retrieves a paginated list of exams, newest date first.
func (r *PgxExamRepository) ListExams(ctx context.Context, limit int, offset int) ([]domain.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams ORDER BY date DESC LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		m, err := scanExam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		exams = append(exams, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading exams: %w", err)
	}
	return mapping.ToDomainExamSlice(exams), nil
}

// UpsertMarks inserts or overwrites marks keyed on (exam, student, subject).
// Runs in a single transaction so a marks sheet applies all-or-nothing.
func (r *PgxExamRepository) UpsertMarks(ctx context.Context, marks []domain.ExamMark) error {
	if len(marks) == 0 {
		return nil
	}

	query := `
		INSERT INTO exam_marks (` + examMarkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (exam_id, student_id, subject_name) DO UPDATE
		SET marks_obtained = EXCLUDED.marks_obtained,
		    is_absent = EXCLUDED.is_absent,
		    remarks = EXCLUDED.remarks,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	for _, mark := range marks {
		m := mapping.ToModelExamMark(mark)
		_, err := tx.Exec(ctx, query,
			m.ExamID,
			m.StudentID,
			m.SubjectName,
			m.MarksObtained,
			m.IsAbsent,
			m.Remarks,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert mark for student %s subject %s: %w", m.StudentID, m.SubjectName, err)
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxExamRepository) queryMarks(ctx context.Context, query string, args ...any) ([]domain.ExamMark, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exam marks: %w", err)
	}
	defer rows.Close()

	var marks []models.ExamMark
	for rows.Next() {
		var m models.ExamMark
		err := rows.Scan(
			&m.ExamID,
			&m.StudentID,
			&m.SubjectName,
			&m.MarksObtained,
			&m.IsAbsent,
			&m.Remarks,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exam mark: %w", err)
		}
		marks = append(marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading exam marks: %w", err)
	}
	return mapping.ToDomainExamMarkSlice(marks), nil
}

// FindMarksByExam retrieves every mark recorded for an exam.
func (r *PgxExamRepository) FindMarksByExam(ctx context.Context, examID string) ([]domain.ExamMark, error) {
	query := `SELECT ` + examMarkColumns + ` FROM exam_marks WHERE exam_id = $1 ORDER BY student_id, subject_name;`
	return r.queryMarks(ctx, query, examID)
}

// FindMarksByExamAndStudent retrieves one student's marks in one exam.
func (r *PgxExamRepository) FindMarksByExamAndStudent(ctx context.Context, examID string, studentID string) ([]domain.ExamMark, error) {
	query := `SELECT ` + examMarkColumns + ` FROM exam_marks WHERE exam_id = $1 AND student_id = $2 ORDER BY subject_name;`
	return r.queryMarks(ctx, query, examID, studentID)
}
