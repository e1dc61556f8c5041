package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the commands.
type ServiceContainer struct {
	Accounts        AccountRegistrySvc
	Journal         JournalSvcFacade
	CashTransaction CashTransactionSvcFacade
	Reconciliation  ReconciliationSvcFacade
	Transfer        TransferSvcFacade
	Aging           AgingSvc
	Ledger          LedgerProjectorSvc
}
