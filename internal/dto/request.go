package dto

import (
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitRequestRequest defines the data needed to submit a deposit, withdrawal
// or credit request.
type SubmitRequestRequest struct {
	AccountID   string             `json:"accountID" binding:"required"`
	Kind        domain.RequestKind `json:"kind" binding:"required,oneof=deposit withdrawal credit"`
	Amount      decimal.Decimal    `json:"amount" binding:"required,decimalgt0"`
	TermDays    *int               `json:"termDays"`    // Required for credit requests
	BankName    string             `json:"bankName"`    // Optional external bank reference
	BankAccount string             `json:"bankAccount"` // Optional external account reference
}

// DecideRequestRequest defines an admin decision on a pending request.
type DecideRequestRequest struct {
	Outcome domain.DecisionOutcome `json:"outcome" binding:"required,oneof=approve reject"`
}

// RequestResponse defines the data returned for a request.
type RequestResponse struct {
	RequestID   string              `json:"requestID"`
	AccountID   string              `json:"accountID"`
	Kind        domain.RequestKind  `json:"kind"`
	Amount      decimal.Decimal     `json:"amount"`
	TermDays    *int                `json:"termDays,omitempty"`
	BankName    string              `json:"bankName,omitempty"`
	BankAccount string              `json:"bankAccount,omitempty"`
	State       domain.RequestState `json:"state"`
	DecidedAt   *time.Time          `json:"decidedAt,omitempty"`
	DecidedBy   string              `json:"decidedBy,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ToRequestResponse converts a domain.Request to a RequestResponse DTO.
func ToRequestResponse(r *domain.Request) RequestResponse {
	return RequestResponse{
		RequestID:   r.RequestID,
		AccountID:   r.AccountID,
		Kind:        r.Kind,
		Amount:      r.Amount,
		TermDays:    r.TermDays,
		BankName:    r.BankName,
		BankAccount: r.BankAccount,
		State:       r.State,
		DecidedAt:   r.DecidedAt,
		DecidedBy:   r.DecidedBy,
		CreatedAt:   r.CreatedAt,
	}
}

// ToRequestResponses converts a slice of domain requests to DTOs.
func ToRequestResponses(requests []domain.Request) []RequestResponse {
	res := make([]RequestResponse, len(requests))
	for i := range requests {
		res[i] = ToRequestResponse(&requests[i])
	}
	return res
}

// ListPendingParams defines query parameters for the pending queue.
type ListPendingParams struct {
	Kind string `form:"kind" binding:"omitempty,oneof=deposit withdrawal credit"`
}
