package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dannabank/dnb_backend/internal/apperrors"
	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCapitalRepository struct {
	BaseRepository
}

// newPgxCapitalRepository creates a new repository for the singleton bank
// capital record.
func newPgxCapitalRepository(pool *pgxpool.Pool) portsrepo.CapitalRepositoryFacade {
	return &PgxCapitalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCapitalRepository implements portsrepo.CapitalRepositoryFacade
var _ portsrepo.CapitalRepositoryFacade = (*PgxCapitalRepository)(nil)

// GetCapital retrieves the current bank capital.
func (r *PgxCapitalRepository) GetCapital(ctx context.Context) (*domain.CapitalAccount, error) {
	query := `SELECT capital, last_updated_at, last_updated_by FROM bank_capital WHERE id = 1;`

	var capital domain.CapitalAccount
	err := r.Pool.QueryRow(ctx, query).Scan(&capital.Capital, &capital.LastUpdatedAt, &capital.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(500, "bank capital record missing; migrations not applied", err)
		}
		return nil, fmt.Errorf("failed to read bank capital: %w", err)
	}
	return &capital, nil
}

// GetCapitalForUpdate retrieves the capital record and locks it so concurrent
// decisions touching capital serialize.
func (r *PgxCapitalRepository) GetCapitalForUpdate(ctx context.Context, tx pgx.Tx) (*domain.CapitalAccount, error) {
	query := `SELECT capital, last_updated_at, last_updated_by FROM bank_capital WHERE id = 1 FOR UPDATE;`

	var capital domain.CapitalAccount
	err := tx.QueryRow(ctx, query).Scan(&capital.Capital, &capital.LastUpdatedAt, &capital.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(500, "bank capital record missing; migrations not applied", err)
		}
		return nil, fmt.Errorf("failed to lock bank capital: %w", err)
	}
	return &capital, nil
}

// AdjustCapitalInTx applies a signed delta to the bank capital and returns the
// new value. The WHERE guard keeps capital non-negative at the data layer.
func (r *PgxCapitalRepository) AdjustCapitalInTx(ctx context.Context, tx pgx.Tx, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE bank_capital
		SET capital = capital + $1, last_updated_at = $2, last_updated_by = $3
		WHERE id = 1 AND capital + $1 >= 0
		RETURNING capital;
	`

	var newCapital decimal.Decimal
	err := tx.QueryRow(ctx, query, delta, now, userID).Scan(&newCapital)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: adjustment of %s rejected", apperrors.ErrCapitalUnderflow, delta.String())
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" { // check violation
			return decimal.Zero, fmt.Errorf("%w: adjustment of %s rejected", apperrors.ErrCapitalUnderflow, delta.String())
		}
		return decimal.Zero, fmt.Errorf("failed to adjust bank capital: %w", err)
	}

	return newCapital, nil
}
