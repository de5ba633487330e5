package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agribooks/ledger-core/internal/apperrors"
	"github.com/agribooks/ledger-core/internal/core/domain"
	portsrepo "github.com/agribooks/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
	"github.com/agribooks/ledger-core/internal/dto"
	"github.com/agribooks/ledger-core/internal/utils/accounting"
)

var (
	ErrTooFewLines          = fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	ErrEntryNotBalanced     = fmt.Errorf("%w: entry debits and credits do not balance", apperrors.ErrValidation)
	ErrAccountNotFound      = fmt.Errorf("%w: account referenced by entry line", apperrors.ErrNotFound)
	ErrPeriodClosed         = fmt.Errorf("%w: entry date falls in a closed fiscal period", apperrors.ErrConflict)
	ErrInvalidTransition    = fmt.Errorf("%w: invalid entry status transition", apperrors.ErrConflict)
	ErrCannotVoidReconciled = fmt.Errorf("%w: reconciled entries cannot be voided", apperrors.ErrConflict)
	ErrAlreadyReversed      = fmt.Errorf("%w: entry already has a reversing entry", apperrors.ErrConflict)
	ErrReverseOfReversal    = fmt.Errorf("%w: cannot reverse a reversal entry", apperrors.ErrConflict)
)

// journalService implements the journal entry engine: validation, numbering,
// posting, voiding and reversal of balanced entries.
type journalService struct {
	BaseService
	entryRepo   portsrepo.EntryRepositoryWithTx
	accountRepo portsrepo.AccountReader
	fiscalRepo  portsrepo.FiscalPeriodReader
}

// NewJournalService creates a new journal service.
func NewJournalService(entryRepo portsrepo.EntryRepositoryWithTx, accountRepo portsrepo.AccountReader, fiscalRepo portsrepo.FiscalPeriodReader) portssvc.JournalSvcFacade {
	return &journalService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		fiscalRepo:  fiscalRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// guardOpenPeriod rejects writes dated inside a closed fiscal period.
// Dates not covered by any period are allowed; periods are opt-in.
func (s *journalService) guardOpenPeriod(ctx context.Context, entryDate time.Time) error {
	period, err := s.fiscalRepo.FindPeriodForDate(ctx, entryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to resolve fiscal period for %s: %w", entryDate.Format("2006-01-02"), err)
	}
	if period.IsClosed {
		return fmt.Errorf("%w (period %s)", ErrPeriodClosed, period.Name)
	}
	return nil
}

// CreateEntry validates and persists a new journal entry with its lines.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	return s.createEntry(ctx, req, nil, creatorUserID)
}

// createEntry is the shared creation path; reversesEntryID is set only by
// ReverseEntry so the link never comes in from the outside.
func (s *journalService) createEntry(ctx context.Context, req dto.CreateEntryRequest, reversesEntryID *string, creatorUserID string) (*domain.JournalEntry, error) {
	if len(req.Lines) < 2 {
		return nil, ErrTooFewLines
	}

	sourceType := domain.SourceManual
	if req.SourceType != "" {
		parsed, ok := domain.ParseSourceType(req.SourceType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, req.SourceType)
		}
		sourceType = parsed
	}

	// Entries are dated by calendar day. Time-of-day is dropped up front so
	// the stored date and the period guard's SQL comparison agree with
	// FiscalPeriod.Contains; a mid-day timestamp on the last day of a period
	// must not slip past its midnight end_date.
	entryDate := req.EntryDate.UTC().Truncate(24 * time.Hour)

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalEntryLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.Debit.IsNegative() || lineReq.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: debit and credit must be non-negative for account %s", apperrors.ErrValidation, lineReq.AccountID)
		}
		lines[i] = domain.JournalEntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lineReq.AccountID,
			Description: lineReq.Description,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			TaxCode:     lineReq.TaxCode,
			CustomerID:  lineReq.CustomerID,
			VendorID:    lineReq.VendorID,
			ClassID:     lineReq.ClassID,
			LocationID:  lineReq.LocationID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	// Double-entry check before anything touches storage (invariant: an
	// unbalanced entry is never persisted).
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntryNotBalanced, err)
	}

	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueAccountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry creation")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	if err := s.guardOpenPeriod(ctx, entryDate); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:         entryID,
		EntryDate:       entryDate,
		Memo:            req.Memo,
		Status:          domain.Draft,
		SourceType:      sourceType,
		SourceID:        req.SourceID,
		IsAdjusting:     req.Adjusting,
		ReversesEntryID: reversesEntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.AutoPost {
		entry.Status = domain.Posted
		postedAt := now
		entry.PostedAt = &postedAt
	}

	// The repository claims the next entry number and writes entry plus lines
	// in one transaction.
	saved, err := s.entryRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", saved.EntryID),
		slog.Int64("entry_number", saved.EntryNumber),
		slog.String("status", string(saved.Status)),
		slog.String("source_type", string(saved.SourceType)))
	saved.Lines = lines
	return saved, nil
}

// PostEntry transitions a draft entry to posted.
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: cannot post entry in status %s", ErrInvalidTransition, entry.Status)
	}

	// The guard applies at post time too: a draft written before a period
	// closed must not slip through afterwards.
	if err := s.guardOpenPeriod(ctx, entry.EntryDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Posted, nil, &now, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}

	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.Int64("entry_number", entry.EntryNumber))
	return entry, nil
}

// VoidEntry terminally voids a posted entry. Voiding never rewrites amounts;
// the entry simply stops contributing to balances.
func (s *journalService) VoidEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	switch entry.Status {
	case domain.Posted:
		// The only voidable status.
	case domain.Reconciled:
		return nil, ErrCannotVoidReconciled
	default:
		return nil, fmt.Errorf("%w: cannot void entry in status %s", ErrInvalidTransition, entry.Status)
	}

	// Voiding removes the entry from every balance, which retroactively moves
	// the totals of the period it is dated in. A locked period blocks that
	// just as it blocks new postings.
	if err := s.guardOpenPeriod(ctx, entry.EntryDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	memo := fmt.Sprintf("%s [VOIDED: %s]", entry.Memo, reason)
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Voided, &memo, nil, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to void entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to void entry %s: %w", entryID, err)
	}

	entry.Status = domain.Voided
	entry.Memo = memo
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry voided", slog.String("entry_id", entryID), slog.String("reason", reason))
	return entry, nil
}

// ReverseEntry creates a new auto-posted entry with every line's debit and
// credit swapped. The original stays posted; history is never mutated.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, reversalDate time.Time, userID string) (*domain.JournalEntry, error) {
	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: cannot reverse entry in status %s", ErrInvalidTransition, original.Status)
	}
	if original.ReversesEntryID != nil {
		return nil, ErrReverseOfReversal
	}
	if original.IsReversed {
		return nil, ErrAlreadyReversed
	}

	originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}

	reversedLines := make([]dto.CreateEntryLineRequest, len(originalLines))
	for i, line := range originalLines {
		reversedLines[i] = dto.CreateEntryLineRequest{
			AccountID:   line.AccountID,
			Description: line.Description,
			Debit:       line.Credit,
			Credit:      line.Debit,
			TaxCode:     line.TaxCode,
			CustomerID:  line.CustomerID,
			VendorID:    line.VendorID,
			ClassID:     line.ClassID,
			LocationID:  line.LocationID,
		}
	}

	req := dto.CreateEntryRequest{
		EntryDate:  reversalDate,
		Memo:       fmt.Sprintf("Reversal of entry #%d", original.EntryNumber),
		SourceType: string(domain.SourceReversal),
		SourceID:   &original.EntryID,
		AutoPost:   true,
		Lines:      reversedLines,
	}
	reversal, err := s.createEntry(ctx, req, &original.EntryID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.entryRepo.MarkEntryReversed(ctx, original.EntryID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to flag original entry as reversed",
			slog.String("entry_id", original.EntryID),
			slog.String("reversal_entry_id", reversal.EntryID))
		return nil, fmt.Errorf("failed to flag entry %s as reversed: %w", original.EntryID, err)
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.Int64("reversal_entry_number", reversal.EntryNumber))
	return reversal, nil
}

// MarkReconciled flips a posted entry to reconciled. Called by the bank
// reconciliation process; the flag never re-opens balancing.
func (s *journalService) MarkReconciled(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: cannot reconcile entry in status %s", ErrInvalidTransition, entry.Status)
	}

	now := time.Now().UTC()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Reconciled, nil, nil, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to reconcile entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to reconcile entry %s: %w", entryID, err)
	}

	entry.Status = domain.Reconciled
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry reconciled", slog.String("entry_id", entryID))
	return entry, nil
}

// GetEntry retrieves an entry with its lines loaded.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a filtered page of entry headers.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	filter := portsrepo.ListEntriesFilter{
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		AccountID: params.AccountID,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if params.Status != nil {
		status, ok := domain.ParseEntryStatus(*params.Status)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
	}
	if params.SourceType != nil {
		source, ok := domain.ParseSourceType(*params.SourceType)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unknown source type %q", apperrors.ErrValidation, *params.SourceType)
		}
		filter.SourceType = &source
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	s.LogDebug(ctx, "Entries listed", slog.Int("count", len(entries)))
	return entries, nextToken, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
