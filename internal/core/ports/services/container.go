package services

// ServiceContainer bundles all service facades for injection into handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Request   RequestSvcFacade
	Approval  ApprovalSvcFacade
	Capital   CapitalSvcFacade
	Credit    CreditSvcFacade
	Dashboard DashboardSvcFacade
}
