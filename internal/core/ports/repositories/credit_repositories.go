package repositories

import (
	"context"
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CreditReader defines read operations for the credit book.
type CreditReader interface {
	// FindActiveCreditByAccount retrieves the account's active credit, or
	// (nil, nil) when the account holds none.
	FindActiveCreditByAccount(ctx context.Context, accountID string) (*domain.Credit, error)

	// ListCreditsByAccount retrieves all credits for an account, newest first.
	ListCreditsByAccount(ctx context.Context, accountID string) ([]domain.Credit, error)

	// ListCreditsDueBefore retrieves active credits whose due date is before
	// the cutoff, for delinquency reporting.
	ListCreditsDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Credit, error)
}

// CreditTxOps defines credit operations that must run inside an engine
// transaction.
type CreditTxOps interface {
	// FindActiveCreditForUpdate retrieves and locks the account's active
	// credit slot, or returns (nil, nil) when the account holds none.
	FindActiveCreditForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Credit, error)

	// OpenCreditInTx persists a new active credit. Fails with
	// apperrors.ErrDuplicateActiveCredit if the account already holds one;
	// a partial unique index backs this check at the data layer.
	OpenCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) error

	// UpdateCreditInTx persists the total due and status of an existing credit.
	UpdateCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) error
}

// CreditRepositoryFacade combines all credit-book repository interfaces.
type CreditRepositoryFacade interface {
	CreditReader
	CreditTxOps
}
