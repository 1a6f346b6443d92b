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

const transactionColumns = `transaction_id, external_order_id, external_payment_id, student_id, amount, status, signature, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for gateway transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements the facade
var _ portsrepo.PaymentTransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.PaymentTransaction, error) {
	var m models.PaymentTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.ExternalOrderID,
		&m.ExternalPaymentID,
		&m.StudentID,
		&m.Amount,
		&m.Status,
		&m.Signature,
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

// SaveTransaction inserts a new transaction in created status.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.PaymentTransaction) error {
	m := mapping.ToModelPaymentTransaction(txn)

	query := `
		INSERT INTO payment_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.ExternalOrderID,
		m.ExternalPaymentID,
		m.StudentID,
		m.Amount,
		m.Status,
		m.Signature,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction for order %s already exists", apperrors.ErrDuplicate, m.ExternalOrderID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its internal identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.PaymentTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM payment_transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	d := mapping.ToDomainPaymentTransaction(*m)
	return &d, nil
}

// FindTransactionByOrderID retrieves a transaction by the gateway order identifier.
func (r *PgxTransactionRepository) FindTransactionByOrderID(ctx context.Context, externalOrderID string) (*domain.PaymentTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM payment_transactions WHERE external_order_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, externalOrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction for order %s: %w", externalOrderID, err)
	}
	d := mapping.ToDomainPaymentTransaction(*m)
	return &d, nil
}

// FindCapturedWithoutPayment lists captured transactions older than the
// cutoff with no fee payment referencing them. Feeds the reconciliation sweep.
func (r *PgxTransactionRepository) FindCapturedWithoutPayment(ctx context.Context, cutoff time.Time) ([]domain.PaymentTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM payment_transactions t
		WHERE t.status = 'captured'
		  AND t.last_updated_at < $1
		  AND NOT EXISTS (
			SELECT 1 FROM fee_payments p WHERE p.transaction_id = t.transaction_id
		  )
		ORDER BY t.last_updated_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query unledgered transactions: %w", err)
	}
	defer rows.Close()

	var result []domain.PaymentTransaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unledgered transaction: %w", err)
		}
		result = append(result, mapping.ToDomainPaymentTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading unledgered transactions: %w", err)
	}
	return result, nil
}

// MarkCapturedInTx flips a created transaction to captured. The WHERE clause
// on status is the idempotency gate: a second delivery of the same capture
// matches zero rows and comes back as ok=false.
func (r *PgxTransactionRepository) MarkCapturedInTx(ctx context.Context, tx pgx.Tx, transactionID string, externalPaymentID string, signature string, userID string, now time.Time) (bool, error) {
	query := `
		UPDATE payment_transactions
		SET status = 'captured', external_payment_id = $2, signature = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = 'created';
	`
	tag, err := tx.Exec(ctx, query, transactionID, externalPaymentID, signature, now, userID)
	if err != nil {
		return false, fmt.Errorf("failed to capture transaction %s: %w", transactionID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkFailed records a terminal failure reported by the gateway.
func (r *PgxTransactionRepository) MarkFailed(ctx context.Context, transactionID string, userID string, now time.Time) error {
	query := `
		UPDATE payment_transactions
		SET status = 'failed', last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND status = 'created';
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s failed: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
