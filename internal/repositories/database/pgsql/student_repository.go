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

const studentColumns = `student_id, student_number, name, phone, guardian_name, course_code, session, total_fees, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxStudentRepository struct {
	BaseRepository
}

// newPgxStudentRepository creates a new repository for student records.
func newPgxStudentRepository(pool *pgxpool.Pool) *PgxStudentRepository {
	return &PgxStudentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxStudentRepository implements the facade
var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

func scanStudent(row pgx.Row) (*models.Student, error) {
	var m models.Student
	err := row.Scan(
		&m.StudentID,
		&m.StudentNumber,
		&m.Name,
		&m.Phone,
		&m.GuardianName,
		&m.CourseCode,
		&m.Session,
		&m.TotalFees,
		&m.IsActive,
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

// SaveStudent inserts a new student.
func (r *PgxStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	m := mapping.ToModelStudent(student)

	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.StudentID,
		m.StudentNumber,
		m.Name,
		m.Phone,
		m.GuardianName,
		m.CourseCode,
		m.Session,
		m.TotalFees,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: student number %s already exists", apperrors.ErrDuplicate, m.StudentNumber)
		}
		return fmt.Errorf("failed to save student %s: %w", m.StudentID, err)
	}
	return nil
}

// UpdateStudent updates an existing student's details.
func (r *PgxStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	m := mapping.ToModelStudent(student)

	query := `
		UPDATE students
		SET name = $2, phone = $3, guardian_name = $4, total_fees = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE student_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.StudentID,
		m.Name,
		m.Phone,
		m.GuardianName,
		m.TotalFees,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update student %s: %w", m.StudentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindStudentByID retrieves a student by the internal identifier.
func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1;`

	m, err := scanStudent(r.Pool.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student %s: %w", studentID, err)
	}
	d := mapping.ToDomainStudent(*m)
	return &d, nil
}

// FindStudentByNumber retrieves a student by the minted student number.
func (r *PgxStudentRepository) FindStudentByNumber(ctx context.Context, studentNumber string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_number = $1;`

	m, err := scanStudent(r.Pool.QueryRow(ctx, query, studentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student number %s: %w", studentNumber, err)
	}
	d := mapping.ToDomainStudent(*m)
	return &d, nil
}

// ListStudents retrieves a paginated, filterable list of students.
// Zero-valued filters are ignored.
func (r *PgxStudentRepository) ListStudents(ctx context.Context, courseCode string, session string, limit int, offset int) ([]domain.Student, error) {
	query := `
		SELECT ` + studentColumns + ` FROM students
		WHERE ($1 = '' OR course_code = $1)
		  AND ($2 = '' OR session = $2)
		ORDER BY student_number
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, courseCode, session, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		m, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading students: %w", err)
	}
	return mapping.ToDomainStudentSlice(students), nil
}
