package services

import (
	"context"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/dannabank/dnb_backend/internal/dto"
)

// AccountSvcFacade defines the account operations exposed to handlers.
type AccountSvcFacade interface {
	// CreateAccount opens a new customer account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves an account by its identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountSummary aggregates balance, recent movements and credit state.
	GetAccountSummary(ctx context.Context, accountID string) (*dto.AccountSummaryResponse, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}
