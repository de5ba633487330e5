package mapping

import (
	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/agribooks/ledger-core/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its storage representation.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		Memo:            d.Memo,
		Status:          models.EntryStatus(d.Status),
		SourceType:      models.SourceType(d.SourceType),
		SourceID:        d.SourceID,
		IsAdjusting:     d.IsAdjusting,
		IsReversed:      d.IsReversed,
		ReversesEntryID: d.ReversesEntryID,
		PostedAt:        d.PostedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a storage JournalEntry to the domain representation.
// An unknown stored source type surfaces as SourceUnknown; an unknown status is
// carried through verbatim so the bad value stays visible. Neither is silently
// coerced to a real variant.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	status, ok := domain.ParseEntryStatus(string(m.Status))
	if !ok {
		status = domain.EntryStatus(m.Status)
	}
	source, _ := domain.ParseSourceType(string(m.SourceType))
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		Memo:            m.Memo,
		Status:          status,
		SourceType:      source,
		SourceID:        m.SourceID,
		IsAdjusting:     m.IsAdjusting,
		IsReversed:      m.IsReversed,
		ReversesEntryID: m.ReversesEntryID,
		PostedAt:        m.PostedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to its storage representation.
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
		TaxCode:     strOrNil(d.TaxCode),
		CustomerID:  strOrNil(d.CustomerID),
		VendorID:    strOrNil(d.VendorID),
		ClassID:     strOrNil(d.ClassID),
		LocationID:  strOrNil(d.LocationID),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntryLine converts a storage line to the domain representation.
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		TaxCode:     strOrEmpty(m.TaxCode),
		CustomerID:  strOrEmpty(m.CustomerID),
		VendorID:    strOrEmpty(m.VendorID),
		ClassID:     strOrEmpty(m.ClassID),
		LocationID:  strOrEmpty(m.LocationID),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
