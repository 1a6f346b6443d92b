package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
)

// PaymentTransactionReader defines read operations for gateway transactions
type PaymentTransactionReader interface {
	// FindTransactionByID retrieves a transaction by its internal identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.PaymentTransaction, error)

	// FindTransactionByOrderID retrieves a transaction by the gateway order identifier.
	FindTransactionByOrderID(ctx context.Context, externalOrderID string) (*domain.PaymentTransaction, error)

	// FindCapturedWithoutPayment lists transactions captured before the cutoff
	// that have no fee payment row yet. Used by the reconciliation sweep.
	FindCapturedWithoutPayment(ctx context.Context, cutoff time.Time) ([]domain.PaymentTransaction, error)
}

// PaymentTransactionWriter defines write operations for gateway transactions
type PaymentTransactionWriter interface {
	// SaveTransaction persists a new transaction in created status.
	SaveTransaction(ctx context.Context, txn domain.PaymentTransaction) error

	// MarkCapturedInTx flips a transaction from created to captured within a
	// transaction. Returns false when the row was not in created status, which
	// is how duplicate webhook deliveries are detected.
	MarkCapturedInTx(ctx context.Context, tx pgx.Tx, transactionID string, externalPaymentID string, signature string, userID string, now time.Time) (bool, error)

	// MarkFailed records a terminal failure reported by the gateway.
	MarkFailed(ctx context.Context, transactionID string, userID string, now time.Time) error
}

// PaymentTransactionRepositoryFacade combines all transaction repository interfaces
type PaymentTransactionRepositoryFacade interface {
	PaymentTransactionReader
	PaymentTransactionWriter
}

// PaymentTransactionRepositoryWithTx extends the facade with transaction capabilities
type PaymentTransactionRepositoryWithTx interface {
	PaymentTransactionRepositoryFacade
	TransactionManager
}

// FeePaymentReader defines read operations for the fee ledger
type FeePaymentReader interface {
	// FindPaymentByID retrieves a fee payment by its identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error)

	// FindPaymentByReceiptNumber retrieves a fee payment by its receipt number.
	FindPaymentByReceiptNumber(ctx context.Context, receiptNumber string) (*domain.FeePayment, error)

	// ListPaymentsByStudent retrieves a paginated ledger for one student,
	// newest first.
	ListPaymentsByStudent(ctx context.Context, studentID string, limit int, offset int) ([]domain.FeePayment, error)

	// ListPayments retrieves a paginated ledger across all students.
	ListPayments(ctx context.Context, limit int, offset int) ([]domain.FeePayment, error)

	// SumPaidByStudent totals all amounts the student has already paid.
	SumPaidByStudent(ctx context.Context, studentID string) (decimal.Decimal, error)

	// SumPaidByStudentInTx is SumPaidByStudent inside a caller-owned transaction.
	SumPaidByStudentInTx(ctx context.Context, tx pgx.Tx, studentID string) (decimal.Decimal, error)
}

// FeePaymentWriter defines write operations for the fee ledger
type FeePaymentWriter interface {
	// SavePayment persists a new fee payment.
	SavePayment(ctx context.Context, payment domain.FeePayment) error

	// SavePaymentInTx persists a new fee payment within a caller-owned
	// transaction, so the ledger row commits atomically with the capture.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.FeePayment) error

	// UpdateNotificationStatus writes back the delivery outcome of the
	// payment's receipt message.
	UpdateNotificationStatus(ctx context.Context, paymentID string, status domain.NotificationStatus, now time.Time) error
}

// FeePaymentRepositoryFacade combines all fee ledger repository interfaces
type FeePaymentRepositoryFacade interface {
	FeePaymentReader
	FeePaymentWriter
}

// FeePaymentRepositoryWithTx extends the facade with transaction capabilities
type FeePaymentRepositoryWithTx interface {
	FeePaymentRepositoryFacade
	TransactionManager
}
