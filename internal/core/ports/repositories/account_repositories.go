package repositories

import (
	"context"
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// CountAccounts returns the total number of accounts.
	CountAccounts(ctx context.Context) (int64, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTxOps defines account operations that must run inside an engine
// transaction. They are sub-steps of a larger atomic mutation set and are
// never invoked standalone.
type AccountTxOps interface {
	// FindAccountByIDForUpdate retrieves an account and locks its row for update.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// AdjustBalanceInTx applies a signed delta to the account balance and
	// returns the new balance. Fails with apperrors.ErrInsufficientFunds if
	// the resulting balance would be negative.
	AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTxOps
}
