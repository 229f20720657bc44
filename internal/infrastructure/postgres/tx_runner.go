package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Shifts-api/internal/application/shift"
	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/repository"
)

var _ shift.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunForOwnerDate opens a transaction, takes the advisory lock of (userID, date) and hands fn
// a shift repository bound to the tx. Commits when fn returns nil, rolls back otherwise.
// Concurrent creators for the same owner and day queue on the lock, so the overlap check
// and the insert are atomic with respect to each other.
func (r *TxRunner) RunForOwnerDate(ctx context.Context, userID, date string, fn func(repo repository.ShiftRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey(userID, date)); err != nil {
		return fmt.Errorf("lock owner/date: %w", err)
	}

	if err := fn(NewShiftRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isExclusionViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func lockKey(userID, date string) string {
	return "shift:" + userID + ":" + date
}
