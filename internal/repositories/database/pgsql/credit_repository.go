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
)

type PgxCreditRepository struct {
	BaseRepository
}

// newPgxCreditRepository creates a new repository for the credit book.
func newPgxCreditRepository(pool *pgxpool.Pool) portsrepo.CreditRepositoryFacade {
	return &PgxCreditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCreditRepository implements portsrepo.CreditRepositoryFacade
var _ portsrepo.CreditRepositoryFacade = (*PgxCreditRepository)(nil)

const creditColumns = `credit_id, account_id, principal, interest_rate, total_due, due_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanCredit(row pgx.Row) (*domain.Credit, error) {
	var cr domain.Credit
	err := row.Scan(
		&cr.CreditID,
		&cr.AccountID,
		&cr.Principal,
		&cr.InterestRate,
		&cr.TotalDue,
		&cr.DueDate,
		&cr.Status,
		&cr.CreatedAt,
		&cr.CreatedBy,
		&cr.LastUpdatedAt,
		&cr.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

// FindActiveCreditByAccount retrieves the account's active credit, or
// (nil, nil) when the account holds none.
func (r *PgxCreditRepository) FindActiveCreditByAccount(ctx context.Context, accountID string) (*domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE account_id = $1 AND status = 'active';`

	cr, err := scanCredit(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active credit for account %s: %w", accountID, err)
	}
	return cr, nil
}

// FindActiveCreditForUpdate retrieves and locks the account's active credit
// slot. Returns (nil, nil) when the account holds no active credit; in that
// case the partial unique index still guards the slot against concurrent opens.
func (r *PgxCreditRepository) FindActiveCreditForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE account_id = $1 AND status = 'active' FOR UPDATE;`

	cr, err := scanCredit(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock active credit for account %s: %w", accountID, err)
	}
	return cr, nil
}

// ListCreditsByAccount retrieves all credits for an account, newest first.
func (r *PgxCreditRepository) ListCreditsByAccount(ctx context.Context, accountID string) ([]domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE account_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credits for account %s: %w", accountID, err)
	}
	defer rows.Close()

	credits := []domain.Credit{}
	for rows.Next() {
		cr, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit row: %w", err)
		}
		credits = append(credits, *cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit rows: %w", err)
	}

	return credits, nil
}

// ListCreditsDueBefore retrieves active credits whose due date falls before
// the cutoff, soonest due first.
func (r *PgxCreditRepository) ListCreditsDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE status = 'active' AND due_date < $1 ORDER BY due_date;`

	rows, err := r.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query credits due before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	defer rows.Close()

	credits := []domain.Credit{}
	for rows.Next() {
		cr, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit row: %w", err)
		}
		credits = append(credits, *cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit rows: %w", err)
	}

	return credits, nil
}

// OpenCreditInTx persists a new active credit. The partial unique index on
// active credits turns a concurrent second open into ErrDuplicateActiveCredit.
func (r *PgxCreditRepository) OpenCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) error {
	query := `
		INSERT INTO credits (credit_id, account_id, principal, interest_rate, total_due, due_date, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := tx.Exec(ctx, query,
		credit.CreditID,
		credit.AccountID,
		credit.Principal,
		credit.InterestRate,
		credit.TotalDue,
		credit.DueDate,
		credit.Status,
		credit.CreatedAt,
		credit.CreatedBy,
		credit.LastUpdatedAt,
		credit.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account %s already holds an active credit", apperrors.ErrDuplicateActiveCredit, credit.AccountID)
		}
		return fmt.Errorf("failed to open credit %s: %w", credit.CreditID, err)
	}
	return nil
}

// UpdateCreditInTx persists the total due and status of an existing credit.
func (r *PgxCreditRepository) UpdateCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) error {
	query := `
		UPDATE credits
		SET total_due = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE credit_id = $1;
	`

	cmdTag, err := tx.Exec(ctx, query,
		credit.CreditID,
		credit.TotalDue,
		credit.Status,
		credit.LastUpdatedAt,
		credit.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update credit %s: %w", credit.CreditID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, credit.CreditID)
	}
	return nil
}
