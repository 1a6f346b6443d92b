package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceRepositoryFacade hands out monotonically increasing counters per
// namespace. A value is consumed the moment it is returned; gaps from
// rolled-back callers are acceptable, reuse is not.
type SequenceRepositoryFacade interface {
	// NextValue atomically increments and returns the counter for the
	// namespace, creating it at 1 on first use.
	NextValue(ctx context.Context, namespace string) (int64, error)

	// NextValueInTx is NextValue inside a caller-owned transaction, for
	// mints that must commit atomically with the record they number.
	NextValueInTx(ctx context.Context, tx pgx.Tx, namespace string) (int64, error)
}

// SequenceRepositoryWithTx extends SequenceRepositoryFacade with transaction capabilities
type SequenceRepositoryWithTx interface {
	SequenceRepositoryFacade
	TransactionManager
}
