package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft      EntryStatus = "DRAFT"
	Posted     EntryStatus = "POSTED"
	Voided     EntryStatus = "VOIDED"
	Reconciled EntryStatus = "RECONCILED"
)

// ParseEntryStatus parses a stored status string, returning false for unknown values.
func ParseEntryStatus(s string) (EntryStatus, bool) {
	switch EntryStatus(s) {
	case Draft, Posted, Voided, Reconciled:
		return EntryStatus(s), true
	}
	return "", false
}

// ContributesToBalance reports whether entries in this status are visible to
// balance and ledger computations. Draft and voided entries are inert.
func (s EntryStatus) ContributesToBalance() bool {
	return s == Posted || s == Reconciled
}

// SourceType identifies the subsystem that originated a journal entry.
// The ledger core treats it as a back-reference label, not an ownership link.
type SourceType string

const (
	SourceManual         SourceType = "MANUAL"
	SourceBill           SourceType = "BILL"
	SourceInvoice        SourceType = "INVOICE"
	SourcePayroll        SourceType = "PAYROLL"
	SourceReversal       SourceType = "REVERSAL"
	SourceOpeningBalance SourceType = "OPENING_BALANCE"
	SourceYearEndClose   SourceType = "YEAR_END_CLOSE"
	// SourceUnknown is the designated fallback for stored values this build
	// does not recognize. Parsing never silently picks a real source.
	SourceUnknown SourceType = "UNKNOWN"
)

// ParseSourceType parses a stored source type string. Unrecognized values map
// to SourceUnknown and ok=false so callers can log the original.
func ParseSourceType(s string) (SourceType, bool) {
	switch SourceType(s) {
	case SourceManual, SourceBill, SourceInvoice, SourcePayroll, SourceReversal, SourceOpeningBalance, SourceYearEndClose:
		return SourceType(s), true
	}
	return SourceUnknown, false
}

// JournalEntry represents a single, dated, balanced financial event.
// Entries are never edited after creation; corrections are new entries.
type JournalEntry struct {
	EntryID         string      `json:"entryID"`
	EntryNumber     int64       `json:"entryNumber"` // Global monotonically increasing sequence
	EntryDate       time.Time   `json:"entryDate"`
	Memo            string      `json:"memo"`
	Status          EntryStatus `json:"status"`
	SourceType      SourceType  `json:"sourceType"`
	SourceID        *string     `json:"sourceID"`        // Back-reference to the originating document
	IsAdjusting     bool        `json:"isAdjusting"`
	IsReversed      bool        `json:"isReversed"`      // A reversing entry exists for this entry
	ReversesEntryID *string     `json:"reversesEntryID"` // Set on the reversal, pointing at the original
	PostedAt        *time.Time  `json:"postedAt"`
	AuditFields

	// Lines are often loaded separately; nil means "not loaded".
	Lines []JournalEntryLine `json:"lines,omitempty"`
}

// JournalEntryLine is one debit/credit row within an entry.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`  // Non-negative
	Credit      decimal.Decimal `json:"credit"` // Non-negative
	TaxCode     string          `json:"taxCode"`

	// Opaque correlation tags passed through for consumers; the ledger core
	// never navigates these.
	CustomerID string `json:"customerID"`
	VendorID   string `json:"vendorID"`
	ClassID    string `json:"classID"`
	LocationID string `json:"locationID"`

	AuditFields
}

// Amount returns the line's magnitude regardless of side.
func (l JournalEntryLine) Amount() decimal.Decimal {
	// A line conventionally carries one side, but both may be present; the
	// net of the pair is what the line actually moves.
	return l.Debit.Sub(l.Credit).Abs()
}
