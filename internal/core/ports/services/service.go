package services

// ServiceContainer holds instances of all the application services.
// Handlers and the CLI depend on this rather than on concrete services.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Ledger      LedgerSvc
	Party       PartySvcFacade
}
