package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
	"github.com/dannabank/dnb_backend/internal/dto"
	"github.com/dannabank/dnb_backend/internal/middleware"
)

const summaryMovementLimit = 30

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	historyRepo portsrepo.HistoryRepositoryFacade
	creditRepo  portsrepo.CreditReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, historyRepo portsrepo.HistoryRepositoryFacade, creditRepo portsrepo.CreditReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		creditRepo:  creditRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new customer account with a zero balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerName:   req.OwnerName,
		ReferrerRef: req.ReferrerRef,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves an account by its identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccountSummary aggregates the customer view: current balance, recent
// movements, credit history and the active credit if any.
func (s *accountService) GetAccountSummary(ctx context.Context, accountID string) (*dto.AccountSummaryResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	movements, err := s.historyRepo.ListRecentByAccount(ctx, accountID, summaryMovementLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for account %s: %w", accountID, err)
	}

	credits, err := s.creditRepo.ListCreditsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credits for account %s: %w", accountID, err)
	}

	summary := &dto.AccountSummaryResponse{
		Account:             dto.ToAccountResponse(account),
		RecentMovements:     dto.ToHistoryEntryResponses(movements),
		Credits:             dto.ToCreditResponses(credits),
		TotalApprovedCredit: decimal.Zero,
	}
	for i := range credits {
		summary.TotalApprovedCredit = summary.TotalApprovedCredit.Add(credits[i].Principal)
		if credits[i].Status == domain.CreditActive {
			resp := dto.ToCreditResponse(&credits[i])
			summary.ActiveCredit = &resp
		}
	}

	return summary, nil
}

// ListAccounts retrieves a paginated list of active accounts.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account as inactive. Its history stays intact.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID), slog.String("by", userID))
	return nil
}
