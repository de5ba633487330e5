package mapping

import (
	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/agribooks/ledger-core/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to its storage representation.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:     d.PeriodID,
		Name:         d.Name,
		FiscalYear:   d.FiscalYear,
		PeriodNumber: d.PeriodNumber,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsClosed:     d.IsClosed,
		ClosedAt:     d.ClosedAt,
		ClosedBy:     strOrNil(d.ClosedBy),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a storage FiscalPeriod to the domain representation.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:     m.PeriodID,
		Name:         m.Name,
		FiscalYear:   m.FiscalYear,
		PeriodNumber: m.PeriodNumber,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsClosed:     m.IsClosed,
		ClosedAt:     m.ClosedAt,
		ClosedBy:     strOrEmpty(m.ClosedBy),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
