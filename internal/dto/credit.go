package dto

import (
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditResponse defines the data returned for a credit obligation.
type CreditResponse struct {
	CreditID     string              `json:"creditID"`
	AccountID    string              `json:"accountID"`
	Principal    decimal.Decimal     `json:"principal"`
	InterestRate decimal.Decimal     `json:"interestRate"`
	TotalDue     decimal.Decimal     `json:"totalDue"`
	DueDate      time.Time           `json:"dueDate"`
	Status       domain.CreditStatus `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToCreditResponse converts a domain.Credit to a CreditResponse DTO.
func ToCreditResponse(c *domain.Credit) CreditResponse {
	return CreditResponse{
		CreditID:     c.CreditID,
		AccountID:    c.AccountID,
		Principal:    c.Principal,
		InterestRate: c.InterestRate,
		TotalDue:     c.TotalDue,
		DueDate:      c.DueDate,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
}

// ToCreditResponses converts a slice of domain credits to DTOs.
func ToCreditResponses(credits []domain.Credit) []CreditResponse {
	res := make([]CreditResponse, len(credits))
	for i := range credits {
		res[i] = ToCreditResponse(&credits[i])
	}
	return res
}

// ListCreditsDueParams defines query parameters for the delinquency view.
type ListCreditsDueParams struct {
	Before *time.Time `form:"before" time_format:"2006-01-02T15:04:05Z07:00"`
}
