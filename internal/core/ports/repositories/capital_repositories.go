package repositories

import (
	"context"
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CapitalRepositoryFacade owns the singleton bank capital record.
type CapitalRepositoryFacade interface {
	// GetCapital retrieves the current bank capital.
	GetCapital(ctx context.Context) (*domain.CapitalAccount, error)

	// GetCapitalForUpdate retrieves the capital record and locks it for update.
	GetCapitalForUpdate(ctx context.Context, tx pgx.Tx) (*domain.CapitalAccount, error)

	// AdjustCapitalInTx applies a signed delta to the bank capital and returns
	// the new capital. Fails with apperrors.ErrCapitalUnderflow if the result
	// would be negative. Must run inside an engine transaction.
	AdjustCapitalInTx(ctx context.Context, tx pgx.Tx, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}
