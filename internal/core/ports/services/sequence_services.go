package services

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceSvcFacade mints the formatted identifiers every document carries.
// Each mint consumes a counter value; a concurrent pair of callers can never
// observe the same number.
type SequenceSvcFacade interface {
	// NextReceiptNumber mints a fee receipt number for the year, e.g. RK-FEE-2026-00042.
	NextReceiptNumber(ctx context.Context, year int) (string, error)

	// NextReceiptNumberInTx is NextReceiptNumber inside a caller-owned transaction.
	NextReceiptNumberInTx(ctx context.Context, tx pgx.Tx, year int) (string, error)

	// NextSlipNumber mints a salary slip number for the year, e.g. RK-SAL-2026-00007.
	NextSlipNumber(ctx context.Context, year int) (string, error)

	// NextStudentNumber mints a student number in the course namespace,
	// e.g. RK2026PHRM012.
	NextStudentNumber(ctx context.Context, year int, courseCode string) (string, error)

	// NextCertificateNumber mints a certificate number in the course namespace.
	NextCertificateNumber(ctx context.Context, year int, courseCode string) (string, error)

	// NextTeacherNumber mints a teacher number, e.g. RK2026TCH003.
	NextTeacherNumber(ctx context.Context, year int) (string, error)
}
