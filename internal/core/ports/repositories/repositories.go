package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Both database drivers build one of these.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	PartyRepo       PartyRepositoryFacade
	Health          HealthChecker
}
