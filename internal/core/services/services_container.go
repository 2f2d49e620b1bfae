package services

import (
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
	"github.com/dannabank/dnb_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, repos.HistoryRepo, repos.CreditRepo)
	container.Request = NewRequestService(repos.RequestRepo, repos.AccountRepo, repos.CreditRepo, cfg)
	container.Approval = NewApprovalService(repos.TxManager, &ApprovalRepos{
		Request: repos.RequestRepo,
		Account: repos.AccountRepo,
		Capital: repos.CapitalRepo,
		Credit:  repos.CreditRepo,
		History: repos.HistoryRepo,
	}, cfg)
	container.Capital = NewCapitalService(repos.TxManager, repos.CapitalRepo, repos.HistoryRepo)
	container.Credit = NewCreditService(repos.CreditRepo)
	container.Dashboard = NewDashboardService(repos.AccountRepo, repos.RequestRepo, repos.CapitalRepo)

	return container
}
