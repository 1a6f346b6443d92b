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

const teacherColumns = `teacher_id, teacher_number, name, phone, subject, basic_salary, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxTeacherRepository struct {
	BaseRepository
}

// newPgxTeacherRepository creates a new repository for teacher records.
func newPgxTeacherRepository(pool *pgxpool.Pool) *PgxTeacherRepository {
	return &PgxTeacherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTeacherRepository implements the facade
var _ portsrepo.TeacherRepositoryFacade = (*PgxTeacherRepository)(nil)

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var m models.Teacher
	err := row.Scan(
		&m.TeacherID,
		&m.TeacherNumber,
		&m.Name,
		&m.Phone,
		&m.Subject,
		&m.BasicSalary,
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

// SaveTeacher inserts a new teacher.
func (r *PgxTeacherRepository) SaveTeacher(ctx context.Context, teacher domain.Teacher) error {
	m := mapping.ToModelTeacher(teacher)

	query := `
		INSERT INTO teachers (` + teacherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TeacherID,
		m.TeacherNumber,
		m.Name,
		m.Phone,
		m.Subject,
		m.BasicSalary,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: teacher number %s already exists", apperrors.ErrDuplicate, m.TeacherNumber)
		}
		return fmt.Errorf("failed to save teacher %s: %w", m.TeacherID, err)
	}
	return nil
}

// UpdateTeacher updates an existing teacher's details.
func (r *PgxTeacherRepository) UpdateTeacher(ctx context.Context, teacher domain.Teacher) error {
	m := mapping.ToModelTeacher(teacher)

	query := `
		UPDATE teachers
		SET name = $2, phone = $3, subject = $4, basic_salary = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE teacher_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TeacherID,
		m.Name,
		m.Phone,
		m.Subject,
		m.BasicSalary,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update teacher %s: %w", m.TeacherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTeacherByID retrieves a teacher by the internal identifier.
func (r *PgxTeacherRepository) FindTeacherByID(ctx context.Context, teacherID string) (*domain.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE teacher_id = $1;`

	m, err := scanTeacher(r.Pool.QueryRow(ctx, query, teacherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find teacher %s: %w", teacherID, err)
	}
	d := mapping.ToDomainTeacher(*m)
	return &d, nil
}

// ListTeachers retrieves a paginated list of teachers.
func (r *PgxTeacherRepository) ListTeachers(ctx context.Context, limit int, offset int) ([]domain.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers ORDER BY teacher_number LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []models.Teacher
	for rows.Next() {
		m, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan teacher: %w", err)
		}
		teachers = append(teachers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading teachers: %w", err)
	}
	return mapping.ToDomainTeacherSlice(teachers), nil
}
