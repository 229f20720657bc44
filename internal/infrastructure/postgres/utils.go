package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx the repositories need, so the same
// adapter runs on the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
)

// isUniqueViolation reports a unique constraint violation (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isExclusionViolation reports an exclusion constraint violation (23P01), raised by
// shifts_no_overlap when two shifts of one owner intersect.
func isExclusionViolation(err error) bool {
	return hasCode(err, codeExclusionViolation)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}
