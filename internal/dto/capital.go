package dto

import (
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CapitalActionAdd and CapitalActionReduce are the admin capital operations.
const (
	CapitalActionAdd    = "add"
	CapitalActionReduce = "reduce"
)

// AdjustCapitalRequest defines a direct administrative capital correction.
type AdjustCapitalRequest struct {
	Action      string          `json:"action" binding:"required,oneof=add reduce"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	Description string          `json:"description" binding:"required"`
}

// CapitalResponse defines the data returned for the bank capital.
type CapitalResponse struct {
	Capital       decimal.Decimal `json:"capital"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToCapitalResponse converts a domain.CapitalAccount to a CapitalResponse DTO.
func ToCapitalResponse(c *domain.CapitalAccount) CapitalResponse {
	return CapitalResponse{
		Capital:       c.Capital,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// HistoryEntryResponse defines the data returned for an audit trail entry.
type HistoryEntryResponse struct {
	EntryID     string             `json:"entryID"`
	AccountID   *string            `json:"accountID,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
	Kind        domain.HistoryKind `json:"kind"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToHistoryEntryResponse converts a domain.HistoryEntry to a DTO.
func ToHistoryEntryResponse(e *domain.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		EntryID:     e.EntryID,
		AccountID:   e.AccountID,
		Amount:      e.Amount,
		Kind:        e.Kind,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// ToHistoryEntryResponses converts a slice of history entries to DTOs.
func ToHistoryEntryResponses(entries []domain.HistoryEntry) []HistoryEntryResponse {
	res := make([]HistoryEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToHistoryEntryResponse(&entries[i])
	}
	return res
}

// ListHistoryParams defines query parameters for the capital history.
type ListHistoryParams struct {
	Limit int `form:"limit,default=30"`
}
