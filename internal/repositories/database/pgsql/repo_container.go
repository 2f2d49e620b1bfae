package pgsql

import (
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all concrete repositories over a single pgx pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TxManager:   &BaseRepository{Pool: pool},
		AccountRepo: newPgxAccountRepository(pool),
		CapitalRepo: newPgxCapitalRepository(pool),
		RequestRepo: newPgxRequestRepository(pool),
		CreditRepo:  newPgxCreditRepository(pool),
		HistoryRepo: newPgxHistoryRepository(pool),
	}
}
