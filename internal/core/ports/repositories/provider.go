package repositories

// RepositoryProvider bundles the repository facades handed to the service
// layer, so services depend on ports rather than a concrete database package.
type RepositoryProvider struct {
	TxManager   TransactionManager
	AccountRepo AccountRepositoryFacade
	CapitalRepo CapitalRepositoryFacade
	RequestRepo RequestRepositoryFacade
	CreditRepo  CreditRepositoryFacade
	HistoryRepo HistoryRepositoryFacade
}
