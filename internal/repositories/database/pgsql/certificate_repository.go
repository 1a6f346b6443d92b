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

const certificateColumns = `certificate_id, certificate_number, student_id, course_code, issue_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxCertificateRepository struct {
	BaseRepository
}

// newPgxCertificateRepository creates a new repository for certificates.
func newPgxCertificateRepository(pool *pgxpool.Pool) *PgxCertificateRepository {
	return &PgxCertificateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCertificateRepository implements the facade
var _ portsrepo.CertificateRepositoryFacade = (*PgxCertificateRepository)(nil)

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	var m models.Certificate
	err := row.Scan(
		&m.CertificateID,
		&m.CertificateNumber,
		&m.StudentID,
		&m.CourseCode,
		&m.IssueDate,
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

// SaveCertificate inserts a newly issued certificate. Unique constraints on
// the number and on (student_id, course_code) back one-per-course issuance.
func (r *PgxCertificateRepository) SaveCertificate(ctx context.Context, certificate domain.Certificate) error {
	m := mapping.ToModelCertificate(certificate)

	query := `
		INSERT INTO certificates (` + certificateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CertificateID,
		m.CertificateNumber,
		m.StudentID,
		m.CourseCode,
		m.IssueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: certificate already issued for student %s course %s", apperrors.ErrDuplicate, m.StudentID, m.CourseCode)
		}
		return fmt.Errorf("failed to save certificate %s: %w", m.CertificateID, err)
	}
	return nil
}

// FindCertificateByNumber retrieves a certificate by its minted number.
func (r *PgxCertificateRepository) FindCertificateByNumber(ctx context.Context, certificateNumber string) (*domain.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE certificate_number = $1;`

	m, err := scanCertificate(r.Pool.QueryRow(ctx, query, certificateNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find certificate %s: %w", certificateNumber, err)
	}
	d := mapping.ToDomainCertificate(*m)
	return &d, nil
}

// FindCertificateByStudent retrieves the certificate issued to a student for a course, if any.
func (r *PgxCertificateRepository) FindCertificateByStudent(ctx context.Context, studentID string, courseCode string) (*domain.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE student_id = $1 AND course_code = $2;`

	m, err := scanCertificate(r.Pool.QueryRow(ctx, query, studentID, courseCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find certificate for student %s course %s: %w", studentID, courseCode, err)
	}
	d := mapping.ToDomainCertificate(*m)
	return &d, nil
}
