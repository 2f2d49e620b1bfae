package repositories

import (
	"context"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// HistoryRepositoryFacade owns the append-only audit trail. Entries are never
// mutated or deleted after append.
type HistoryRepositoryFacade interface {
	// AppendInTx appends an entry as part of an engine transaction.
	AppendInTx(ctx context.Context, tx pgx.Tx, entry domain.HistoryEntry) error

	// ListRecent retrieves the newest entries first, up to limit.
	ListRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// ListRecentByAccount retrieves the newest entries for one account.
	ListRecentByAccount(ctx context.Context, accountID string, limit int) ([]domain.HistoryEntry, error)
}
