package services

import (
	"context"
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	"github.com/dannabank/dnb_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// CapitalSvcFacade defines bank capital operations exposed to handlers.
type CapitalSvcFacade interface {
	// GetCapital retrieves the current bank capital.
	GetCapital(ctx context.Context) (*domain.CapitalAccount, error)

	// AdjustCapital applies a direct administrative capital correction and
	// records it in the history log.
	AdjustCapital(ctx context.Context, delta decimal.Decimal, description string, adminUserID string) (*domain.CapitalAccount, error)

	// GetCapitalHistory retrieves the newest history entries, up to limit.
	GetCapitalHistory(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}

// CreditSvcFacade defines read-only credit book operations exposed to handlers.
// The active credit of a single account is served through the account summary.
type CreditSvcFacade interface {
	// ListCreditsDueBefore retrieves active credits due before the cutoff.
	ListCreditsDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Credit, error)
}

// DashboardSvcFacade aggregates the admin dashboard view.
type DashboardSvcFacade interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}
