package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
)

// creditService exposes read-only views of the credit book. All mutation goes
// through the approval engine.
type creditService struct {
	creditRepo portsrepo.CreditReader
}

// NewCreditService creates a new CreditService.
func NewCreditService(creditRepo portsrepo.CreditReader) portssvc.CreditSvcFacade {
	return &creditService{creditRepo: creditRepo}
}

// Ensure creditService implements the portssvc.CreditSvcFacade interface
var _ portssvc.CreditSvcFacade = (*creditService)(nil)

// ListCreditsDueBefore retrieves active credits due before the cutoff, for
// delinquency reporting.
func (s *creditService) ListCreditsDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Credit, error) {
	credits, err := s.creditRepo.ListCreditsDueBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits due before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return credits, nil
}
