package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
)

// nextCounterQuery allocates the next value for a namespace in a single
// statement. The upsert makes first use and increment the same atomic
// operation, so two concurrent callers can never read the same value.
const nextCounterQuery = `
	INSERT INTO sequence_counters (namespace, value)
	VALUES ($1, 1)
	ON CONFLICT (namespace) DO UPDATE SET value = sequence_counters.value + 1
	RETURNING value;
`

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for sequence counters.
func newPgxSequenceRepository(pool *pgxpool.Pool) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSequenceRepository implements the facade
var _ portsrepo.SequenceRepositoryWithTx = (*PgxSequenceRepository)(nil)

// NextValue atomically increments and returns the counter for the namespace.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, namespace string) (int64, error) {
	var value int64
	if err := r.Pool.QueryRow(ctx, nextCounterQuery, namespace).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", namespace, err)
	}
	return value, nil
}

// NextValueInTx is NextValue within a caller-owned transaction. The counter
// row stays locked until the caller commits, which serializes concurrent
// mints in the same namespace.
func (r *PgxSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, namespace string) (int64, error) {
	var value int64
	if err := tx.QueryRow(ctx, nextCounterQuery, namespace).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s in tx: %w", namespace, err)
	}
	return value, nil
}
