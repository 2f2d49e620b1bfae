package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalAccount is the singleton record holding the bank's own funds pool,
// distinct from aggregate customer balances. Mutated only by the approval
// engine and administrative capital adjustments.
type CapitalAccount struct {
	Capital       decimal.Decimal `json:"capital"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}
