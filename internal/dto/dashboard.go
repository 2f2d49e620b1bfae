package dto

import "github.com/shopspring/decimal"

// DashboardResponse aggregates the admin dashboard view: total accounts, the
// three pending queues and the current bank capital.
type DashboardResponse struct {
	TotalAccounts      int64             `json:"totalAccounts"`
	DepositRequests    []RequestResponse `json:"depositRequests"`
	WithdrawalRequests []RequestResponse `json:"withdrawalRequests"`
	CreditRequests     []RequestResponse `json:"creditRequests"`
	BankCapital        decimal.Decimal   `json:"bankCapital"`
}
