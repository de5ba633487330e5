package repositories

import (
	"context"
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
)

// ListEntriesFilter narrows journal entry listings.
type ListEntriesFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *domain.EntryStatus
	SourceType *domain.SourceType
	AccountID  *string // Entries with at least one line on this account
	Limit      int
	NextToken  *string // Opaque token paging on (entry_date, entry_number)
}

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines belonging to a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves a filtered, paginated list of entry headers ordered
	// by (entry_date, entry_number). It returns a token for the next page.
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists an entry and all its lines in a single transaction,
	// claiming the next entry number from the global sequence. The assigned
	// number is written back into the returned entry. Nothing is visible to
	// readers unless the whole write commits.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error)

	// UpdateEntryStatus transitions an entry's status, stamping posted_at when
	// the new status is POSTED and replacing the memo when memo is non-nil.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, memo *string, postedAt *time.Time, userID string, now time.Time) error

	// MarkEntryReversed flags an entry as having a reversing entry.
	MarkEntryReversed(ctx context.Context, entryID string, userID string, now time.Time) error
}

// EntryRepository combines all journal-entry repository interfaces.
type EntryRepository interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepository with transaction capabilities.
type EntryRepositoryWithTx interface {
	EntryRepository
	TransactionManager
}
