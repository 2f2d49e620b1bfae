package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxHistoryRepository struct {
	BaseRepository
}

// newPgxHistoryRepository creates a new repository for the append-only
// capital history.
func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxHistoryRepository implements portsrepo.HistoryRepositoryFacade
var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

const historyColumns = `entry_id, account_id, amount, kind, description, created_at, created_by`

func scanHistoryEntry(row pgx.Row) (*domain.HistoryEntry, error) {
	var entry domain.HistoryEntry
	var accountID sql.NullString

	err := row.Scan(
		&entry.EntryID,
		&accountID,
		&entry.Amount,
		&entry.Kind,
		&entry.Description,
		&entry.CreatedAt,
		&entry.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if accountID.Valid {
		id := accountID.String
		entry.AccountID = &id
	}
	return &entry, nil
}

// AppendInTx appends an entry to the history as part of an engine transaction.
// The table has no update or delete path; rows are written once.
func (r *PgxHistoryRepository) AppendInTx(ctx context.Context, tx pgx.Tx, entry domain.HistoryEntry) error {
	query := `
		INSERT INTO capital_history (entry_id, account_id, amount, kind, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	var accountID sql.NullString
	if entry.AccountID != nil {
		accountID = sql.NullString{String: *entry.AccountID, Valid: true}
	}

	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		accountID,
		entry.Amount,
		entry.Kind,
		entry.Description,
		entry.CreatedAt,
		entry.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// ListRecent retrieves the newest history entries first, up to limit.
func (r *PgxHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `SELECT ` + historyColumns + ` FROM capital_history ORDER BY created_at DESC, entry_id DESC LIMIT $1;`

	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history entries: %w", err)
	}
	defer rows.Close()

	return collectHistoryEntries(rows)
}

// ListRecentByAccount retrieves the newest history entries for one account.
func (r *PgxHistoryRepository) ListRecentByAccount(ctx context.Context, accountID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `SELECT ` + historyColumns + ` FROM capital_history WHERE account_id = $1 ORDER BY created_at DESC, entry_id DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	return collectHistoryEntries(rows)
}

func collectHistoryEntries(rows pgx.Rows) ([]domain.HistoryEntry, error) {
	entries := []domain.HistoryEntry{}
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return entries, nil
}
