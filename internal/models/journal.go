package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the storage boundary.
type EntryStatus string

// SourceType mirrors domain.SourceType at the storage boundary.
type SourceType string

// JournalEntry is the storage representation of a journal entry header.
type JournalEntry struct {
	EntryID         string      `db:"entry_id"`
	EntryNumber     int64       `db:"entry_number"`
	EntryDate       time.Time   `db:"entry_date"`
	Memo            string      `db:"memo"`
	Status          EntryStatus `db:"status"`
	SourceType      SourceType  `db:"source_type"`
	SourceID        *string     `db:"source_id"`
	IsAdjusting     bool        `db:"is_adjusting"`
	IsReversed      bool        `db:"is_reversed"`
	ReversesEntryID *string     `db:"reverses_entry_id"`
	PostedAt        *time.Time  `db:"posted_at"`
	AuditFields
}

// JournalEntryLine is the storage representation of one entry row.
type JournalEntryLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	TaxCode     *string         `db:"tax_code"`
	CustomerID  *string         `db:"customer_id"`
	VendorID    *string         `db:"vendor_id"`
	ClassID     *string         `db:"class_id"`
	LocationID  *string         `db:"location_id"`
	AuditFields
}
