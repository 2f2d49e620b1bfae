package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dannabank/dnb_backend/internal/apperrors"
	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
	"github.com/dannabank/dnb_backend/internal/middleware"
)

type capitalService struct {
	txManager   portsrepo.TransactionManager
	capitalRepo portsrepo.CapitalRepositoryFacade
	historyRepo portsrepo.HistoryRepositoryFacade
}

// NewCapitalService creates a new CapitalService.
func NewCapitalService(txManager portsrepo.TransactionManager, capitalRepo portsrepo.CapitalRepositoryFacade, historyRepo portsrepo.HistoryRepositoryFacade) portssvc.CapitalSvcFacade {
	return &capitalService{
		txManager:   txManager,
		capitalRepo: capitalRepo,
		historyRepo: historyRepo,
	}
}

// Ensure capitalService implements the portssvc.CapitalSvcFacade interface
var _ portssvc.CapitalSvcFacade = (*capitalService)(nil)

// GetCapital retrieves the current bank capital.
func (s *capitalService) GetCapital(ctx context.Context) (*domain.CapitalAccount, error) {
	return s.capitalRepo.GetCapital(ctx)
}

// AdjustCapital applies a direct administrative capital correction and records
// it in the history log, as one transaction.
func (s *capitalService) AdjustCapital(ctx context.Context, delta decimal.Decimal, description string, adminUserID string) (*domain.CapitalAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if delta.IsZero() {
		return nil, fmt.Errorf("%w: capital adjustment must be non-zero", apperrors.ErrInvalidAmount)
	}

	var result domain.CapitalAccount
	err := s.txManager.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		now := time.Now().UTC()

		if _, err := s.capitalRepo.GetCapitalForUpdate(ctx, tx); err != nil {
			return err
		}
		newCapital, err := s.capitalRepo.AdjustCapitalInTx(ctx, tx, delta, adminUserID, now)
		if err != nil {
			return err
		}

		entry := domain.HistoryEntry{
			EntryID:     uuid.NewString(),
			Amount:      delta,
			Kind:        domain.HistoryCapitalAdjustment,
			Description: description,
			CreatedAt:   now,
			CreatedBy:   adminUserID,
		}
		if err := s.historyRepo.AppendInTx(ctx, tx, entry); err != nil {
			return err
		}

		result = domain.CapitalAccount{Capital: newCapital, LastUpdatedAt: now, LastUpdatedBy: adminUserID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Capital adjusted",
		slog.String("delta", delta.String()),
		slog.String("capital", result.Capital.String()),
		slog.String("by", adminUserID),
	)
	return &result, nil
}

// GetCapitalHistory retrieves the newest history entries, up to limit.
func (s *capitalService) GetCapitalHistory(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	entries, err := s.historyRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load capital history: %w", err)
	}
	return entries, nil
}
