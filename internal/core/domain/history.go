package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryKind categorizes a capital-affecting event.
type HistoryKind string

const (
	HistoryDeposit           HistoryKind = "deposit"
	HistoryWithdrawal        HistoryKind = "withdrawal"
	HistoryCreditIssued      HistoryKind = "credit_issued"
	HistoryCapitalAdjustment HistoryKind = "capital_adjustment"
)

// HistoryEntry is an immutable audit record of a balance-affecting event.
// The amount carries the sign of the movement as seen by the customer side
// of the event. Entries are never mutated or deleted.
type HistoryEntry struct {
	EntryID     string          `json:"entryID"`             // Primary Key (UUID)
	AccountID   *string         `json:"accountID,omitempty"` // Nil for pure capital adjustments
	Amount      decimal.Decimal `json:"amount"`              // Signed delta applied to capital
	Kind        HistoryKind     `json:"kind"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}
