package services

import (
	"context"
	"fmt"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
	"github.com/dannabank/dnb_backend/internal/dto"
)

// dashboardService aggregates the admin landing view: total accounts, the
// three pending queues and the current bank capital.
type dashboardService struct {
	accountRepo portsrepo.AccountReader
	requestRepo portsrepo.RequestReader
	capitalRepo portsrepo.CapitalRepositoryFacade
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(accountRepo portsrepo.AccountReader, requestRepo portsrepo.RequestReader, capitalRepo portsrepo.CapitalRepositoryFacade) portssvc.DashboardSvcFacade {
	return &dashboardService{
		accountRepo: accountRepo,
		requestRepo: requestRepo,
		capitalRepo: capitalRepo,
	}
}

// Ensure dashboardService implements the portssvc.DashboardSvcFacade interface
var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

func (s *dashboardService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totalAccounts, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts for dashboard: %w", err)
	}

	capital, err := s.capitalRepo.GetCapital(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read capital for dashboard: %w", err)
	}

	dashboard := &dto.DashboardResponse{
		TotalAccounts: totalAccounts,
		BankCapital:   capital.Capital,
	}

	for _, kind := range []domain.RequestKind{domain.KindDeposit, domain.KindWithdrawal, domain.KindCredit} {
		k := kind
		pending, err := s.requestRepo.ListPendingRequests(ctx, &k)
		if err != nil {
			return nil, fmt.Errorf("failed to list pending %s requests for dashboard: %w", kind, err)
		}
		switch kind {
		case domain.KindDeposit:
			dashboard.DepositRequests = dto.ToRequestResponses(pending)
		case domain.KindWithdrawal:
			dashboard.WithdrawalRequests = dto.ToRequestResponses(pending)
		case domain.KindCredit:
			dashboard.CreditRequests = dto.ToRequestResponses(pending)
		}
	}

	return dashboard, nil
}
