package services

// ServiceContainer bundles the core service facades handed to the HTTP layer.
// It is constructed once at process start; there is no ambient singleton.
type ServiceContainer struct {
	Account AccountSvcFacade
	Journal JournalSvcFacade
	Ledger  LedgerSvcFacade
	Fiscal  FiscalSvcFacade
}
