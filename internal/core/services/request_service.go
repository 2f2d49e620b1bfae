package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dannabank/dnb_backend/internal/apperrors"
	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
	"github.com/dannabank/dnb_backend/internal/dto"
	"github.com/dannabank/dnb_backend/internal/middleware"
	"github.com/dannabank/dnb_backend/internal/platform/config"
)

// requestService owns the request ledger: submission validation and queue reads.
type requestService struct {
	requestRepo portsrepo.RequestRepositoryFacade
	accountRepo portsrepo.AccountReader
	creditRepo  portsrepo.CreditReader

	maxCreditAmount   decimal.Decimal
	maxCreditTermDays int
}

// NewRequestService creates a new RequestService with the configured credit
// ceilings.
func NewRequestService(requestRepo portsrepo.RequestRepositoryFacade, accountRepo portsrepo.AccountReader, creditRepo portsrepo.CreditReader, cfg *config.Config) portssvc.RequestSvcFacade {
	return &requestService{
		requestRepo:       requestRepo,
		accountRepo:       accountRepo,
		creditRepo:        creditRepo,
		maxCreditAmount:   cfg.CreditMaxAmount,
		maxCreditTermDays: cfg.CreditMaxTermDays,
	}
}

// Ensure requestService implements the portssvc.RequestSvcFacade interface
var _ portssvc.RequestSvcFacade = (*requestService)(nil)

// SubmitRequest validates a customer request and records it as pending.
func (s *requestService) SubmitRequest(ctx context.Context, req dto.SubmitRequestRequest, creatorUserID string) (*domain.Request, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount.String())
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, req.AccountID)
	}

	switch req.Kind {
	case domain.KindWithdrawal:
		// Approval re-checks this under lock; checking here just fails fast.
		if account.Balance.LessThan(req.Amount) {
			return nil, fmt.Errorf("%w: balance %s is less than requested %s", apperrors.ErrInsufficientFunds, account.Balance.String(), req.Amount.String())
		}
	case domain.KindCredit:
		if err := s.validateCreditRequest(ctx, req); err != nil {
			return nil, err
		}
	case domain.KindDeposit:
		// No submit-time checks beyond the positive amount.
	default:
		return nil, fmt.Errorf("%w: unknown request kind %q", apperrors.ErrValidation, req.Kind)
	}

	now := time.Now().UTC()
	request := domain.Request{
		RequestID:   uuid.NewString(),
		AccountID:   req.AccountID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		TermDays:    req.TermDays,
		BankName:    req.BankName,
		BankAccount: req.BankAccount,
		State:       domain.StatePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		logger.Error("Failed to save request", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to submit request: %w", err)
	}

	logger.Info("Request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("account_id", request.AccountID),
		slog.String("kind", string(request.Kind)),
		slog.String("amount", request.Amount.String()),
	)
	return &request, nil
}

func (s *requestService) validateCreditRequest(ctx context.Context, req dto.SubmitRequestRequest) error {
	if req.TermDays == nil {
		return fmt.Errorf("%w: credit requests require termDays", apperrors.ErrValidation)
	}
	if *req.TermDays <= 0 {
		return fmt.Errorf("%w: termDays must be positive, got %d", apperrors.ErrInvalidAmount, *req.TermDays)
	}
	if req.Amount.GreaterThan(s.maxCreditAmount) {
		return fmt.Errorf("%w: credit amount %s exceeds ceiling %s", apperrors.ErrPolicyViolation, req.Amount.String(), s.maxCreditAmount.String())
	}
	if *req.TermDays > s.maxCreditTermDays {
		return fmt.Errorf("%w: term of %d days exceeds ceiling %d", apperrors.ErrPolicyViolation, *req.TermDays, s.maxCreditTermDays)
	}

	active, err := s.creditRepo.FindActiveCreditByAccount(ctx, req.AccountID)
	if err != nil {
		return fmt.Errorf("failed to check active credit for account %s: %w", req.AccountID, err)
	}
	if active != nil {
		return fmt.Errorf("%w: account %s already holds credit %s", apperrors.ErrDuplicateActiveCredit, req.AccountID, active.CreditID)
	}
	return nil
}

// GetRequestByID retrieves a request by its identifier.
func (s *requestService) GetRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return request, nil
}

// ListPending retrieves pending requests in insertion order, optionally
// filtered by kind.
func (s *requestService) ListPending(ctx context.Context, kind *domain.RequestKind) ([]domain.Request, error) {
	requests, err := s.requestRepo.ListPendingRequests(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, nil
}
