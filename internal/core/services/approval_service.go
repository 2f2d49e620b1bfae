package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dannabank/dnb_backend/internal/apperrors"
	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
	"github.com/dannabank/dnb_backend/internal/middleware"
	"github.com/dannabank/dnb_backend/internal/platform/config"
)

// approvalService drives the pending -> terminal state machine. Each decision
// runs as one transaction: the request row, the account row, the capital row
// and (for credits) the active-credit slot are locked in that fixed order, all
// mutations apply inside the same transaction, and any failure rolls the whole
// unit back leaving the request pending.
type approvalService struct {
	txManager   portsrepo.TransactionManager
	requestRepo portsrepo.RequestRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	capitalRepo portsrepo.CapitalRepositoryFacade
	creditRepo  portsrepo.CreditRepositoryFacade
	historyRepo portsrepo.HistoryRepositoryFacade

	interestRate decimal.Decimal
}

// NewApprovalService creates the approval engine with the configured credit
// interest rate.
func NewApprovalService(txManager portsrepo.TransactionManager, repos *ApprovalRepos, cfg *config.Config) portssvc.ApprovalSvcFacade {
	return &approvalService{
		txManager:    txManager,
		requestRepo:  repos.Request,
		accountRepo:  repos.Account,
		capitalRepo:  repos.Capital,
		creditRepo:   repos.Credit,
		historyRepo:  repos.History,
		interestRate: cfg.CreditInterestRate,
	}
}

// ApprovalRepos groups the repositories the approval engine mutates.
type ApprovalRepos struct {
	Request portsrepo.RequestRepositoryFacade
	Account portsrepo.AccountRepositoryFacade
	Capital portsrepo.CapitalRepositoryFacade
	Credit  portsrepo.CreditRepositoryFacade
	History portsrepo.HistoryRepositoryFacade
}

// Ensure approvalService implements the portssvc.ApprovalSvcFacade interface
var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// Decide applies an admin decision to a pending request.
func (s *approvalService) Decide(ctx context.Context, requestID string, outcome domain.DecisionOutcome, deciderUserID string) (*domain.Request, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if outcome != domain.OutcomeApprove && outcome != domain.OutcomeReject {
		return nil, fmt.Errorf("%w: unknown outcome %q", apperrors.ErrValidation, outcome)
	}

	var decided *domain.Request
	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		request, err := s.requestRepo.FindRequestByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if request.IsTerminal() {
			return fmt.Errorf("%w: request %s is already %s", apperrors.ErrAlreadyDecided, requestID, request.State)
		}

		now := time.Now().UTC()

		if outcome == domain.OutcomeReject {
			if err := s.requestRepo.MarkDecidedInTx(ctx, tx, requestID, domain.StateRejected, deciderUserID, now); err != nil {
				return err
			}
			decided = request
			decided.State = domain.StateRejected
			decided.DecidedAt = &now
			decided.DecidedBy = deciderUserID
			return nil
		}

		if err := s.applyApproval(ctx, tx, request, deciderUserID, now); err != nil {
			return err
		}

		if err := s.requestRepo.MarkDecidedInTx(ctx, tx, requestID, domain.StateApproved, deciderUserID, now); err != nil {
			return err
		}
		decided = request
		decided.State = domain.StateApproved
		decided.DecidedAt = &now
		decided.DecidedBy = deciderUserID
		return nil
	})
	if err != nil {
		logger.Warn("Decision aborted",
			slog.String("request_id", requestID),
			slog.String("outcome", string(outcome)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("Decision committed",
		slog.String("request_id", requestID),
		slog.String("account_id", decided.AccountID),
		slog.String("kind", string(decided.Kind)),
		slog.String("state", string(decided.State)),
		slog.String("decided_by", deciderUserID),
	)
	return decided, nil
}

// applyApproval performs the balance mutations for an approval. Lock order is
// fixed across all decision kinds: account row, then capital row, then the
// account's active-credit slot. Concurrent decisions on different accounts
// cannot deadlock because they acquire in the same order.
func (s *approvalService) applyApproval(ctx context.Context, tx pgx.Tx, request *domain.Request, deciderUserID string, now time.Time) error {
	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, request.AccountID)
	if err != nil {
		return err
	}
	if _, err := s.capitalRepo.GetCapitalForUpdate(ctx, tx); err != nil {
		return err
	}
	activeCredit, err := s.creditRepo.FindActiveCreditForUpdate(ctx, tx, request.AccountID)
	if err != nil {
		return err
	}

	switch request.Kind {
	case domain.KindDeposit:
		return s.applyDeposit(ctx, tx, request, activeCredit, deciderUserID, now)
	case domain.KindWithdrawal:
		return s.applyWithdrawal(ctx, tx, request, account, deciderUserID, now)
	case domain.KindCredit:
		return s.applyCredit(ctx, tx, request, activeCredit, deciderUserID, now)
	default:
		return fmt.Errorf("%w: unknown request kind %q", apperrors.ErrValidation, request.Kind)
	}
}

// applyDeposit routes the deposit to the active credit when one exists, so
// deposits pay down debt before growing the balance. Capital always grows by
// the full deposit.
func (s *approvalService) applyDeposit(ctx context.Context, tx pgx.Tx, request *domain.Request, activeCredit *domain.Credit, deciderUserID string, now time.Time) error {
	if activeCredit != nil {
		activeCredit.ApplyPayment(request.Amount)
		activeCredit.LastUpdatedAt = now
		activeCredit.LastUpdatedBy = deciderUserID
		if err := s.creditRepo.UpdateCreditInTx(ctx, tx, *activeCredit); err != nil {
			return err
		}
	} else {
		if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, request.AccountID, request.Amount, deciderUserID, now); err != nil {
			return err
		}
	}

	if _, err := s.capitalRepo.AdjustCapitalInTx(ctx, tx, request.Amount, deciderUserID, now); err != nil {
		return err
	}

	description := fmt.Sprintf("Deposit of %s to account %s", request.Amount.String(), request.AccountID)
	if activeCredit != nil {
		description = fmt.Sprintf("Deposit of %s applied to credit %s", request.Amount.String(), activeCredit.CreditID)
	}
	return s.appendHistory(ctx, tx, request.AccountID, request.Amount, domain.HistoryDeposit, description, deciderUserID, now)
}

// applyWithdrawal re-checks the balance under lock. On insufficient funds the
// transaction aborts and the request stays pending for a later retry.
func (s *approvalService) applyWithdrawal(ctx context.Context, tx pgx.Tx, request *domain.Request, account *domain.Account, deciderUserID string, now time.Time) error {
	if account.Balance.LessThan(request.Amount) {
		return fmt.Errorf("%w: balance %s is less than requested %s", apperrors.ErrInsufficientFunds, account.Balance.String(), request.Amount.String())
	}

	if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, request.AccountID, request.Amount.Neg(), deciderUserID, now); err != nil {
		return err
	}
	// Withdrawn funds flow to the bank's own pool in this capital model.
	if _, err := s.capitalRepo.AdjustCapitalInTx(ctx, tx, request.Amount, deciderUserID, now); err != nil {
		return err
	}

	description := fmt.Sprintf("Withdrawal of %s from account %s", request.Amount.String(), request.AccountID)
	return s.appendHistory(ctx, tx, request.AccountID, request.Amount.Neg(), domain.HistoryWithdrawal, description, deciderUserID, now)
}

// applyCredit opens the credit, disburses the principal to the account and
// funds it from capital. The active-credit re-check under lock plus the
// partial unique index make the one-active-credit rule hold under races.
func (s *approvalService) applyCredit(ctx context.Context, tx pgx.Tx, request *domain.Request, activeCredit *domain.Credit, deciderUserID string, now time.Time) error {
	if activeCredit != nil {
		return fmt.Errorf("%w: account %s already holds credit %s", apperrors.ErrDuplicateActiveCredit, request.AccountID, activeCredit.CreditID)
	}
	if request.TermDays == nil {
		return fmt.Errorf("%w: credit request %s has no term", apperrors.ErrValidation, request.RequestID)
	}

	credit := domain.Credit{
		CreditID:     uuid.NewString(),
		AccountID:    request.AccountID,
		Principal:    request.Amount,
		InterestRate: s.interestRate,
		TotalDue:     domain.TotalWithInterest(request.Amount, s.interestRate),
		DueDate:      now.AddDate(0, 0, *request.TermDays),
		Status:       domain.CreditActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     deciderUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: deciderUserID,
		},
	}
	if err := s.creditRepo.OpenCreditInTx(ctx, tx, credit); err != nil {
		return err
	}

	if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, request.AccountID, request.Amount, deciderUserID, now); err != nil {
		return err
	}
	if _, err := s.capitalRepo.AdjustCapitalInTx(ctx, tx, request.Amount.Neg(), deciderUserID, now); err != nil {
		return err
	}

	description := fmt.Sprintf("Credit of %s issued to account %s, total due %s", credit.Principal.String(), request.AccountID, credit.TotalDue.String())
	return s.appendHistory(ctx, tx, request.AccountID, request.Amount.Neg(), domain.HistoryCreditIssued, description, deciderUserID, now)
}

func (s *approvalService) appendHistory(ctx context.Context, tx pgx.Tx, accountID string, amount decimal.Decimal, kind domain.HistoryKind, description string, userID string, now time.Time) error {
	entry := domain.HistoryEntry{
		EntryID:     uuid.NewString(),
		AccountID:   &accountID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	return s.historyRepo.AppendInTx(ctx, tx, entry)
}
