package services

import (
	"context"
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/agribooks/ledger-core/internal/dto"
)

// JournalSvcFacade is the journal entry engine interface.
type JournalSvcFacade interface {
	// CreateEntry validates (line count, account existence, double-entry
	// balance, closed-period guard), assigns the next entry number and
	// persists the entry atomically. AutoPost in the request persists it
	// directly as POSTED.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostEntry transitions a DRAFT entry to POSTED.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// VoidEntry terminally voids a POSTED entry, appending the reason to its
	// memo. Voided entries drop out of every balance computation; callers
	// needing the opposite cash effect must use ReverseEntry.
	VoidEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and auto-posts a new entry with every line's
	// debit/credit swapped, leaving the original posted and untouched apart
	// from its reversed flag.
	ReverseEntry(ctx context.Context, entryID string, reversalDate time.Time, userID string) (*domain.JournalEntry, error)

	// MarkReconciled flips a POSTED entry to RECONCILED. Set by the bank
	// reconciliation process; never re-opens balancing.
	MarkReconciled(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// GetEntry returns an entry with its lines loaded.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error)
}
