package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error

	// WithTx runs fn inside a transaction, committing on nil error and
	// rolling back otherwise. The error from fn is returned unwrapped so
	// callers can match sentinel errors with errors.Is.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
