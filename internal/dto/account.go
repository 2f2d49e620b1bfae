package dto

import (
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new customer account.
type CreateAccountRequest struct {
	OwnerName   string `json:"ownerName" binding:"required"`
	ReferrerRef string `json:"referrerRef"` // Optional referral reference, recorded verbatim
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	OwnerName     string          `json:"ownerName"`
	ReferrerRef   string          `json:"referrerRef"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		OwnerName:     acc.OwnerName,
		ReferrerRef:   acc.ReferrerRef,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountSummaryResponse aggregates everything a customer view needs: current
// balance, recent movements, credit history and the active credit if any.
type AccountSummaryResponse struct {
	Account             AccountResponse        `json:"account"`
	RecentMovements     []HistoryEntryResponse `json:"recentMovements"`
	Credits             []CreditResponse       `json:"credits"`
	ActiveCredit        *CreditResponse        `json:"activeCredit,omitempty"`
	TotalApprovedCredit decimal.Decimal        `json:"totalApprovedCredit"`
}
