package mapping

import (
	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/agribooks/ledger-core/internal/models"
)

// ToModelAccount converts a domain Account to its storage representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		AccountNumber:      d.AccountNumber,
		Name:               d.Name,
		AccountType:        models.AccountType(d.AccountType),
		AccountSubType:     models.AccountSubType(d.AccountSubType),
		ParentAccountID:    strOrNil(d.ParentAccountID),
		Description:        d.Description,
		IsActive:           d.IsActive,
		IsSystem:           d.IsSystem,
		OpeningBalance:     d.OpeningBalance,
		OpeningBalanceDate: d.OpeningBalanceDate,
		CurrencyCode:       d.CurrencyCode,
		TaxLine:            strOrNil(d.TaxLine),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a storage Account to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		AccountNumber:      m.AccountNumber,
		Name:               m.Name,
		AccountType:        domain.AccountType(m.AccountType),
		AccountSubType:     domain.AccountSubType(m.AccountSubType),
		ParentAccountID:    strOrEmpty(m.ParentAccountID),
		Description:        m.Description,
		IsActive:           m.IsActive,
		IsSystem:           m.IsSystem,
		OpeningBalance:     m.OpeningBalance,
		OpeningBalanceDate: m.OpeningBalanceDate,
		CurrencyCode:       m.CurrencyCode,
		TaxLine:            strOrEmpty(m.TaxLine),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
