package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditStatus indicates whether a credit obligation is still outstanding.
type CreditStatus string

const (
	CreditActive CreditStatus = "active"
	CreditClosed CreditStatus = "closed"
)

// Credit is a loan obligation created when a credit request is approved.
// At most one active credit exists per account at any time.
type Credit struct {
	CreditID     string          `json:"creditID"`  // Primary Key (UUID)
	AccountID    string          `json:"accountID"` // FK -> Account.accountID
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interestRate"` // Percent, e.g. 10 means 10%
	TotalDue     decimal.Decimal `json:"totalDue"`     // Decreases as deposits are applied
	DueDate      time.Time       `json:"dueDate"`
	Status       CreditStatus    `json:"status"`
	AuditFields
}

// TotalWithInterest computes the amount owed on a principal at the given
// percentage rate: principal * (1 + rate/100).
func TotalWithInterest(principal, rate decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return principal.Mul(hundred.Add(rate)).Div(hundred)
}

// Overdue reports whether the credit is still active past its due date.
func (c *Credit) Overdue(now time.Time) bool {
	return c.Status == CreditActive && now.After(c.DueDate)
}

// ApplyPayment reduces the outstanding total due by the deposited amount.
// When the payment meets or exceeds the remaining debt the credit closes and
// the total due clamps to zero; any excess is absorbed by the debt, not
// returned to the account.
func (c *Credit) ApplyPayment(amount decimal.Decimal) {
	c.TotalDue = c.TotalDue.Sub(amount)
	if c.TotalDue.LessThanOrEqual(decimal.Zero) {
		c.TotalDue = decimal.Zero
		c.Status = CreditClosed
	}
}
