package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestKind identifies the money movement a customer is asking for.
type RequestKind string

const (
	KindDeposit    RequestKind = "deposit"
	KindWithdrawal RequestKind = "withdrawal"
	KindCredit     RequestKind = "credit"
)

// RequestState is the lifecycle state of a request. A request transitions
// exactly once from pending to a terminal state and is immutable thereafter.
type RequestState string

const (
	StatePending  RequestState = "pending"
	StateApproved RequestState = "approved"
	StateRejected RequestState = "rejected"
)

// DecisionOutcome is an admin's verdict on a pending request.
type DecisionOutcome string

const (
	OutcomeApprove DecisionOutcome = "approve"
	OutcomeReject  DecisionOutcome = "reject"
)

// Request represents a customer-submitted, admin-decided action.
type Request struct {
	RequestID   string          `json:"requestID"` // Primary Key (UUID)
	AccountID   string          `json:"accountID"` // FK -> Account.accountID
	Kind        RequestKind     `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`             // Positive value
	TermDays    *int            `json:"termDays,omitempty"` // Credit requests only
	BankName    string          `json:"bankName"`           // Optional external bank reference
	BankAccount string          `json:"bankAccount"`        // Optional external account reference
	State       RequestState    `json:"state"`
	DecidedAt   *time.Time      `json:"decidedAt,omitempty"`
	DecidedBy   string          `json:"decidedBy,omitempty"`
	AuditFields
}

// IsTerminal reports whether the request has been decided.
func (r *Request) IsTerminal() bool {
	return r.State != StatePending
}
