package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agribooks/ledger-core/internal/apperrors"
	"github.com/agribooks/ledger-core/internal/core/domain"
	portsrepo "github.com/agribooks/ledger-core/internal/core/ports/repositories"
	"github.com/agribooks/ledger-core/internal/models"
	"github.com/agribooks/ledger-core/internal/utils/mapping"
	"github.com/agribooks/ledger-core/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_number, entry_date, memo, status, source_type, source_id, is_adjusting, is_reversed, reverses_entry_id, posted_at, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, description, debit, credit, tax_code, customer_id, vendor_id, class_id, location_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Memo,
		&m.Status,
		&m.SourceType,
		&m.SourceID,
		&m.IsAdjusting,
		&m.IsReversed,
		&m.ReversesEntryID,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Description,
		&m.Debit,
		&m.Credit,
		&m.TaxCode,
		&m.CustomerID,
		&m.VendorID,
		&m.ClassID,
		&m.LocationID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists an entry header and its lines atomically. The entry
// number comes from the global sequence inside the same transaction, so
// committed numbers are gap-free in sequence claim order.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	var entryNumber int64
	if err := tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&entryNumber); err != nil {
		return nil, fmt.Errorf("failed to claim entry number: %w", err)
	}
	entry.EntryNumber = entryNumber

	m := mapping.ToModelJournalEntry(entry)
	insertEntry := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, insertEntry,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Memo,
		m.Status,
		m.SourceType,
		m.SourceID,
		m.IsAdjusting,
		m.IsReversed,
		m.ReversesEntryID,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return nil, fmt.Errorf("failed to save entry %s: %w", m.EntryID, err)
	}

	insertLine := `
		INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelJournalEntryLine(line)
		batch.Queue(insertLine,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.Description,
			ml.Debit,
			ml.Credit,
			ml.TaxCode,
			ml.CustomerID,
			ml.VendorID,
			ml.ClassID,
			ml.LocationID,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return nil, fmt.Errorf("failed to save line %d of entry %s: %w", i, m.EntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to close line insert batch for entry %s: %w", m.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// FindLinesByEntryID retrieves all lines of one entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, mapping.ToDomainJournalEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}
	return lines, nil
}

// ListEntries retrieves a filtered page of entry headers ordered by
// (entry_date, entry_number).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT DISTINCT je.entry_id, je.entry_number, je.entry_date, je.memo, je.status, je.source_type, je.source_id, je.is_adjusting, je.is_reversed, je.reverses_entry_id, je.posted_at, je.created_at, je.created_by, je.last_updated_at, je.last_updated_by
		FROM journal_entries je`
	args := []any{}
	argPos := 1

	if filter.AccountID != nil {
		query += fmt.Sprintf(` JOIN journal_entry_lines jel ON jel.entry_id = je.entry_id AND jel.account_id = $%d`, argPos)
		args = append(args, *filter.AccountID)
		argPos++
	}

	query += ` WHERE 1=1`
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND je.entry_date >= $%d", argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND je.entry_date <= $%d", argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND je.status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.SourceType != nil {
		query += fmt.Sprintf(" AND je.source_type = $%d", argPos)
		args = append(args, string(*filter.SourceType))
		argPos++
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		afterDate, afterNumber, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
		query += fmt.Sprintf(" AND (je.entry_date, je.entry_number) > ($%d, $%d)", argPos, argPos+1)
		args = append(args, afterDate, afterNumber)
		argPos += 2
	}

	query += fmt.Sprintf(" ORDER BY je.entry_date, je.entry_number LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryNumber)
		nextToken = &token
	}
	return entries, nextToken, nil
}

// UpdateEntryStatus transitions an entry's status.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, memo *string, postedAt *time.Time, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2,
		    memo = COALESCE($3, memo),
		    posted_at = COALESCE($4, posted_at),
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, entryID, string(status), memo, postedAt, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkEntryReversed flags an entry as reversed.
func (r *PgxJournalRepository) MarkEntryReversed(ctx context.Context, entryID string, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET is_reversed = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, entryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s reversed: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
