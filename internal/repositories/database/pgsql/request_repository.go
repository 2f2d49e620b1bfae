package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dannabank/dnb_backend/internal/apperrors"
	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRequestRepository struct {
	BaseRepository
}

// newPgxRequestRepository creates a new repository for the request ledger.
func newPgxRequestRepository(pool *pgxpool.Pool) portsrepo.RequestRepositoryFacade {
	return &PgxRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRequestRepository implements portsrepo.RequestRepositoryFacade
var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

const requestColumns = `request_id, account_id, kind, amount, term_days, bank_name, bank_account, state, decided_at, decided_by, created_at, created_by, last_updated_at, last_updated_by`

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var req domain.Request
	var termDays sql.NullInt32
	var bankName, bankAccount, decidedBy sql.NullString
	var decidedAt sql.NullTime

	err := row.Scan(
		&req.RequestID,
		&req.AccountID,
		&req.Kind,
		&req.Amount,
		&termDays,
		&bankName,
		&bankAccount,
		&req.State,
		&decidedAt,
		&decidedBy,
		&req.CreatedAt,
		&req.CreatedBy,
		&req.LastUpdatedAt,
		&req.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if termDays.Valid {
		days := int(termDays.Int32)
		req.TermDays = &days
	}
	if bankName.Valid {
		req.BankName = bankName.String
	}
	if bankAccount.Valid {
		req.BankAccount = bankAccount.String
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		req.DecidedAt = &t
	}
	if decidedBy.Valid {
		req.DecidedBy = decidedBy.String
	}
	return &req, nil
}

// SaveRequest inserts a new pending request.
func (r *PgxRequestRepository) SaveRequest(ctx context.Context, request domain.Request) error {
	query := `
		INSERT INTO requests (request_id, account_id, kind, amount, term_days, bank_name, bank_account, state, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	var termDays sql.NullInt32
	if request.TermDays != nil {
		termDays = sql.NullInt32{Int32: int32(*request.TermDays), Valid: true}
	}
	var bankName, bankAccount sql.NullString
	if request.BankName != "" {
		bankName = sql.NullString{String: request.BankName, Valid: true}
	}
	if request.BankAccount != "" {
		bankAccount = sql.NullString{String: request.BankAccount, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		request.RequestID,
		request.AccountID,
		request.Kind,
		request.Amount,
		termDays,
		bankName,
		bankAccount,
		request.State,
		request.CreatedAt,
		request.CreatedBy,
		request.LastUpdatedAt,
		request.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save request %s: %w", request.RequestID, err)
	}
	return nil
}

// FindRequestByID retrieves a request by its ID.
func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE request_id = $1;`

	req, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find request by ID %s: %w", requestID, err)
	}
	return req, nil
}

// FindRequestByIDForUpdate retrieves a request and locks its row so two
// concurrent decisions on the same request serialize on the ledger entry.
func (r *PgxRequestRepository) FindRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE request_id = $1 FOR UPDATE;`

	req, err := scanRequest(tx.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock request %s for update: %w", requestID, err)
	}
	return req, nil
}

// ListPendingRequests retrieves pending requests in insertion order,
// optionally filtered by kind.
func (r *PgxRequestRepository) ListPendingRequests(ctx context.Context, kind *domain.RequestKind) ([]domain.Request, error) {
	baseQuery := `SELECT ` + requestColumns + ` FROM requests WHERE state = 'pending'`
	orderBy := ` ORDER BY created_at, request_id;`

	var rows pgx.Rows
	var err error
	if kind != nil {
		rows, err = r.Pool.Query(ctx, baseQuery+` AND kind = $1`+orderBy, *kind)
	} else {
		rows, err = r.Pool.Query(ctx, baseQuery+orderBy)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, *req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}

	return requests, nil
}

// MarkDecidedInTx transitions a pending request to a terminal state. The state
// guard in the WHERE clause makes a second decision on the same request fail
// with ErrAlreadyDecided instead of double-applying funds.
func (r *PgxRequestRepository) MarkDecidedInTx(ctx context.Context, tx pgx.Tx, requestID string, state domain.RequestState, decidedBy string, decidedAt time.Time) error {
	query := `
		UPDATE requests
		SET state = $2, decided_at = $3, decided_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE request_id = $1 AND state = 'pending';
	`

	cmdTag, err := tx.Exec(ctx, query, requestID, state, decidedAt, decidedBy)
	if err != nil {
		return fmt.Errorf("failed to transition request %s: %w", requestID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s", apperrors.ErrAlreadyDecided, requestID)
	}

	return nil
}
