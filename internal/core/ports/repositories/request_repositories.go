package repositories

import (
	"context"
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// RequestReader defines read operations for the request ledger.
type RequestReader interface {
	// FindRequestByID retrieves a request by its unique identifier.
	FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error)

	// ListPendingRequests retrieves pending requests in stable insertion
	// order, optionally filtered by kind.
	ListPendingRequests(ctx context.Context, kind *domain.RequestKind) ([]domain.Request, error)
}

// RequestWriter defines write operations for the request ledger.
type RequestWriter interface {
	// SaveRequest persists a new pending request.
	SaveRequest(ctx context.Context, request domain.Request) error
}

// RequestTxOps defines request operations that must run inside an engine
// transaction.
type RequestTxOps interface {
	// FindRequestByIDForUpdate retrieves a request and locks its row so
	// concurrent decisions on the same request serialize.
	FindRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.Request, error)

	// MarkDecidedInTx transitions a pending request to a terminal state.
	// Fails with apperrors.ErrAlreadyDecided if the request is no longer
	// pending.
	MarkDecidedInTx(ctx context.Context, tx pgx.Tx, requestID string, state domain.RequestState, decidedBy string, decidedAt time.Time) error
}

// RequestRepositoryFacade combines all request-ledger repository interfaces.
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
	RequestTxOps
}
