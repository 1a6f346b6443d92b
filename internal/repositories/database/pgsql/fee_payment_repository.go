package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	"github.com/rkinstitute/institute_mgmt_app/internal/models"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils/mapping"
)

const feePaymentColumns = `payment_id, receipt_number, student_id, month_label, total_fees, paid_amount, remaining_amount, payment_mode, payment_date, transaction_id, notification_status, created_at, created_by, last_updated_at, last_updated_by`

type PgxFeePaymentRepository struct {
	BaseRepository
}

// newPgxFeePaymentRepository creates a new repository for the fee ledger.
func newPgxFeePaymentRepository(pool *pgxpool.Pool) *PgxFeePaymentRepository {
	return &PgxFeePaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxFeePaymentRepository implements the facade
var _ portsrepo.FeePaymentRepositoryWithTx = (*PgxFeePaymentRepository)(nil)

func scanFeePayment(row pgx.Row) (*models.FeePayment, error) {
	var m models.FeePayment
	var txnID sql.NullString
	err := row.Scan(
		&m.PaymentID,
		&m.ReceiptNumber,
		&m.StudentID,
		&m.MonthLabel,
		&m.TotalFees,
		&m.PaidAmount,
		&m.RemainingAmount,
		&m.PaymentMode,
		&m.PaymentDate,
		&txnID,
		&m.NotificationStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if txnID.Valid {
		m.TransactionID = &txnID.String
	}
	return &m, nil
}

const insertFeePaymentQuery = `
	INSERT INTO fee_payments (payment_id, receipt_number, student_id, month_label, total_fees, paid_amount, remaining_amount, payment_mode, payment_date, transaction_id, notification_status, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

func feePaymentInsertArgs(m models.FeePayment) []any {
	var txnID sql.NullString
	if m.TransactionID != nil {
		txnID = sql.NullString{String: *m.TransactionID, Valid: true}
	}
	return []any{
		m.PaymentID,
		m.ReceiptNumber,
		m.StudentID,
		m.MonthLabel,
		m.TotalFees,
		m.PaidAmount,
		m.RemainingAmount,
		m.PaymentMode,
		m.PaymentDate,
		txnID,
		m.NotificationStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SavePayment inserts a new fee payment.
func (r *PgxFeePaymentRepository) SavePayment(ctx context.Context, payment domain.FeePayment) error {
	m := mapping.ToModelFeePayment(payment)
	_, err := r.Pool.Exec(ctx, insertFeePaymentQuery, feePaymentInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: receipt %s already exists", apperrors.ErrDuplicate, m.ReceiptNumber)
		}
		return fmt.Errorf("failed to save fee payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// SavePaymentInTx inserts a new fee payment inside a caller-owned transaction.
func (r *PgxFeePaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.FeePayment) error {
	m := mapping.ToModelFeePayment(payment)
	_, err := tx.Exec(ctx, insertFeePaymentQuery, feePaymentInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			// Either the receipt number or the transaction_id is taken.
			return fmt.Errorf("%w: fee payment for receipt %s already exists", apperrors.ErrDuplicate, m.ReceiptNumber)
		}
		return fmt.Errorf("failed to save fee payment %s in tx: %w", m.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a fee payment by its identifier.
func (r *PgxFeePaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error) {
	query := `SELECT ` + feePaymentColumns + ` FROM fee_payments WHERE payment_id = $1;`

	m, err := scanFeePayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee payment %s: %w", paymentID, err)
	}
	d := mapping.ToDomainFeePayment(*m)
	return &d, nil
}

// FindPaymentByReceiptNumber retrieves a fee payment by its receipt number.
func (r *PgxFeePaymentRepository) FindPaymentByReceiptNumber(ctx context.Context, receiptNumber string) (*domain.FeePayment, error) {
	query := `SELECT ` + feePaymentColumns + ` FROM fee_payments WHERE receipt_number = $1;`

	m, err := scanFeePayment(r.Pool.QueryRow(ctx, query, receiptNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt %s: %w", receiptNumber, err)
	}
	d := mapping.ToDomainFeePayment(*m)
	return &d, nil
}

func (r *PgxFeePaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.FeePayment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee payments: %w", err)
	}
	defer rows.Close()

	var payments []models.FeePayment
	for rows.Next() {
		m, err := scanFeePayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee payment: %w", err)
		}
		payments = append(payments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading fee payments: %w", err)
	}
	return mapping.ToDomainFeePaymentSlice(payments), nil
}

// ListPaymentsByStudent retrieves a paginated ledger for one student, newest first.
func (r *PgxFeePaymentRepository) ListPaymentsByStudent(ctx context.Context, studentID string, limit int, offset int) ([]domain.FeePayment, error) {
	query := `
		SELECT ` + feePaymentColumns + ` FROM fee_payments
		WHERE student_id = $1
		ORDER BY payment_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryPayments(ctx, query, studentID, limit, offset)
}

// ListPayments retrieves a paginated ledger across all students.
func (r *PgxFeePaymentRepository) ListPayments(ctx context.Context, limit int, offset int) ([]domain.FeePayment, error) {
	query := `
		SELECT ` + feePaymentColumns + ` FROM fee_payments
		ORDER BY payment_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	return r.queryPayments(ctx, query, limit, offset)
}

const sumPaidQuery = `SELECT COALESCE(SUM(paid_amount), 0) FROM fee_payments WHERE student_id = $1;`

// SumPaidByStudent totals all amounts the student has already paid.
func (r *PgxFeePaymentRepository) SumPaidByStudent(ctx context.Context, studentID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, sumPaidQuery, studentID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for student %s: %w", studentID, err)
	}
	return total, nil
}

// SumPaidByStudentInTx is SumPaidByStudent inside a caller-owned transaction,
// so the balance read and the ledger insert see the same snapshot.
func (r *PgxFeePaymentRepository) SumPaidByStudentInTx(ctx context.Context, tx pgx.Tx, studentID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := tx.QueryRow(ctx, sumPaidQuery, studentID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for student %s in tx: %w", studentID, err)
	}
	return total, nil
}

// UpdateNotificationStatus writes back the delivery outcome of the receipt message.
func (r *PgxFeePaymentRepository) UpdateNotificationStatus(ctx context.Context, paymentID string, status domain.NotificationStatus, now time.Time) error {
	query := `
		UPDATE fee_payments
		SET notification_status = $2, last_updated_at = $3
		WHERE payment_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, paymentID, string(status), now)
	if err != nil {
		return fmt.Errorf("failed to update notification status for payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
