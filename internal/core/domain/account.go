package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a customer's balance record within the core domain.
// This is the primary representation used by services. Accounts are never
// deleted, only deactivated.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	OwnerName   string          `json:"ownerName"`
	ReferrerRef string          `json:"referrerRef"` // Optional referral reference, recorded verbatim
	Balance     decimal.Decimal `json:"balance"`     // Persisted balance, never negative
	IsActive    bool            `json:"isActive"`    // Soft delete flag
	AuditFields
}
