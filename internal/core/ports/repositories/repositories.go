package repositories

// RepositoryProvider bundles every repository implementation handed to the
// service layer at construction time.
type RepositoryProvider struct {
	AccountRepo AccountRepository
	EntryRepo   EntryRepositoryWithTx
	LedgerRepo  LedgerRepository
	FiscalRepo  FiscalPeriodRepository
}
