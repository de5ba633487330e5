package services

import (
	portsrepo "github.com/agribooks/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
)

// NewServiceContainer wires the core services on top of the repository
// provider. Order matters: the journal and ledger engines come first, the
// chart-of-accounts service layers on both, and the fiscal service drives
// the year-end close through the journal engine.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	journalSvc := NewJournalService(repos.EntryRepo, repos.AccountRepo, repos.FiscalRepo)
	ledgerSvc := NewLedgerService(repos.AccountRepo, repos.LedgerRepo)
	accountSvc := NewAccountService(repos.AccountRepo, journalSvc, ledgerSvc)
	fiscalSvc := NewFiscalService(repos.FiscalRepo, repos.AccountRepo, repos.LedgerRepo, journalSvc)

	return &portssvc.ServiceContainer{
		Account: accountSvc,
		Journal: journalSvc,
		Ledger:  ledgerSvc,
		Fiscal:  fiscalSvc,
	}
}
