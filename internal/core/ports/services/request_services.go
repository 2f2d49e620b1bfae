package services

import (
	"context"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/dannabank/dnb_backend/internal/dto"
)

// RequestSvcFacade defines the request-ledger operations exposed to handlers.
type RequestSvcFacade interface {
	// SubmitRequest validates and records a new pending request.
	SubmitRequest(ctx context.Context, req dto.SubmitRequestRequest, creatorUserID string) (*domain.Request, error)

	// GetRequestByID retrieves a request so callers can poll its state.
	GetRequestByID(ctx context.Context, requestID string) (*domain.Request, error)

	// ListPending retrieves pending requests in insertion order, optionally
	// filtered by kind.
	ListPending(ctx context.Context, kind *domain.RequestKind) ([]domain.Request, error)
}

// ApprovalSvcFacade is the approval engine: it drives the pending -> terminal
// state machine and applies the associated balance mutations atomically.
type ApprovalSvcFacade interface {
	// Decide applies an admin decision to a pending request.
	Decide(ctx context.Context, requestID string, outcome domain.DecisionOutcome, deciderUserID string) (*domain.Request, error)
}
