package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	"github.com/rkinstitute/institute_mgmt_app/internal/models"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils/mapping"
)

const salaryColumns = `salary_id, slip_number, teacher_id, month, year, basic_salary, allowances, deductions, net_salary, payment_status, notification_status, created_at, created_by, last_updated_at, last_updated_by`

type PgxSalaryRepository struct {
	BaseRepository
}

// newPgxSalaryRepository creates a new repository for salary records.
func newPgxSalaryRepository(pool *pgxpool.Pool) *PgxSalaryRepository {
	return &PgxSalaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSalaryRepository implements the facade
var _ portsrepo.SalaryRepositoryWithTx = (*PgxSalaryRepository)(nil)

func scanSalary(row pgx.Row) (*models.SalaryRecord, error) {
	var m models.SalaryRecord
	err := row.Scan(
		&m.SalaryID,
		&m.SlipNumber,
		&m.TeacherID,
		&m.Month,
		&m.Year,
		&m.BasicSalary,
		&m.Allowances,
		&m.Deductions,
		&m.NetSalary,
		&m.PaymentStatus,
		&m.NotificationStatus,
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

// SaveSalary inserts a new salary record. The unique constraint on
// (teacher_id, month, year) backs duplicate-slip rejection.
func (r *PgxSalaryRepository) SaveSalary(ctx context.Context, record domain.SalaryRecord) error {
	m := mapping.ToModelSalaryRecord(record)

	query := `
		INSERT INTO salary_records (` + salaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SalaryID,
		m.SlipNumber,
		m.TeacherID,
		m.Month,
		m.Year,
		m.BasicSalary,
		m.Allowances,
		m.Deductions,
		m.NetSalary,
		m.PaymentStatus,
		m.NotificationStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: salary for teacher %s %s %d already generated", apperrors.ErrDuplicate, m.TeacherID, m.Month, m.Year)
		}
		return fmt.Errorf("failed to save salary record %s: %w", m.SalaryID, err)
	}
	return nil
}

// FindSalaryByID retrieves a salary record by its identifier.
func (r *PgxSalaryRepository) FindSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryRecord, error) {
	query := `SELECT ` + salaryColumns + ` FROM salary_records WHERE salary_id = $1;`

	m, err := scanSalary(r.Pool.QueryRow(ctx, query, salaryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find salary record %s: %w", salaryID, err)
	}
	d := mapping.ToDomainSalaryRecord(*m)
	return &d, nil
}

// FindSalaryByPeriod retrieves the record for one teacher and one month, if any.
func (r *PgxSalaryRepository) FindSalaryByPeriod(ctx context.Context, teacherID string, month string, year int) (*domain.SalaryRecord, error) {
	query := `SELECT ` + salaryColumns + ` FROM salary_records WHERE teacher_id = $1 AND month = $2 AND year = $3;`

	m, err := scanSalary(r.Pool.QueryRow(ctx, query, teacherID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find salary for teacher %s %s %d: %w", teacherID, month, year, err)
	}
	d := mapping.ToDomainSalaryRecord(*m)
	return &d, nil
}

// ListSalaries retrieves a paginated, filterable list of salary records.
// Zero-valued filters are ignored.
func (r *PgxSalaryRepository) ListSalaries(ctx context.Context, teacherID string, year int, limit int, offset int) ([]domain.SalaryRecord, error) {
	query := `
		SELECT ` + salaryColumns + ` FROM salary_records
		WHERE ($1 = '' OR teacher_id = $1)
		  AND ($2 = 0 OR year = $2)
		ORDER BY year DESC, created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, teacherID, year, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []models.SalaryRecord
	for rows.Next() {
		m, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading salary records: %w", err)
	}
	return mapping.ToDomainSalaryRecordSlice(records), nil
}

// UpdateSalaryStatus updates the payment status of a salary record.
func (r *PgxSalaryRepository) UpdateSalaryStatus(ctx context.Context, salaryID string, status domain.SalaryStatus, userID string, now time.Time) error {
	query := `
		UPDATE salary_records
		SET payment_status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE salary_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, salaryID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update salary status for %s: %w", salaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateNotificationStatus writes back the delivery outcome of the slip message.
func (r *PgxSalaryRepository) UpdateNotificationStatus(ctx context.Context, salaryID string, status domain.NotificationStatus, now time.Time) error {
	query := `
		UPDATE salary_records
		SET notification_status = $2, last_updated_at = $3
		WHERE salary_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, salaryID, string(status), now)
	if err != nil {
		return fmt.Errorf("failed to update notification status for salary %s: %w", salaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
