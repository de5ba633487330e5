package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agribooks/ledger-core/internal/core/domain"
	portsrepo "github.com/agribooks/ledger-core/internal/core/ports/repositories"
)

// contributingStatuses restricts every ledger query to entries that affect
// balances. Draft and voided entries never show up here.
const contributingStatuses = `('POSTED', 'RECONCILED')`

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// newPgxLedgerRepository creates the read-side repository over posted journal data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{pool: pool}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// SumAccountLines returns an account's total debits and credits over
// contributing entries dated at or before asOf.
func (r *PgxLedgerRepository) SumAccountLines(ctx context.Context, accountID string, asOf *time.Time) (portsrepo.AccountTotals, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		  AND e.status IN ` + contributingStatuses
	args := []any{accountID}
	if asOf != nil {
		query += ` AND e.entry_date <= $2`
		args = append(args, *asOf)
	}
	query += `;`

	totals := portsrepo.AccountTotals{AccountID: accountID}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&totals.TotalDebit, &totals.TotalCredit); err != nil {
		return totals, fmt.Errorf("failed to sum lines for account %s: %w", accountID, err)
	}
	return totals, nil
}

// SumAccountLinesBefore returns totals for contributing entries dated
// strictly before the given date.
func (r *PgxLedgerRepository) SumAccountLinesBefore(ctx context.Context, accountID string, before time.Time) (portsrepo.AccountTotals, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		  AND e.status IN ` + contributingStatuses + `
		  AND e.entry_date < $2;`

	totals := portsrepo.AccountTotals{AccountID: accountID}
	if err := r.pool.QueryRow(ctx, query, accountID, before).Scan(&totals.TotalDebit, &totals.TotalCredit); err != nil {
		return totals, fmt.Errorf("failed to sum prior lines for account %s: %w", accountID, err)
	}
	return totals, nil
}

// FindLedgerLines returns an account's contributing lines joined with their
// entry headers, ordered by (entry_date, entry_number).
func (r *PgxLedgerRepository) FindLedgerLines(ctx context.Context, accountID string, start, end *time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.entry_date, e.memo, l.description, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
		  AND e.status IN ` + contributingStatuses
	args := []any{accountID}
	argPos := 2
	if start != nil {
		query += fmt.Sprintf(" AND e.entry_date >= $%d", argPos)
		args = append(args, *start)
		argPos++
	}
	if end != nil {
		query += fmt.Sprintf(" AND e.entry_date <= $%d", argPos)
		args = append(args, *end)
		argPos++
	}
	query += ` ORDER BY e.entry_date, e.entry_number, l.line_id;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var line domain.LedgerLine
		if err := rows.Scan(&line.EntryID, &line.EntryNumber, &line.EntryDate, &line.Memo, &line.Description, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line for account %s: %w", accountID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines for account %s: %w", accountID, err)
	}
	return lines, nil
}

// SumAllAccountLines returns per-account totals across every account with at
// least one contributing line. One query, one consistent snapshot.
func (r *PgxLedgerRepository) SumAllAccountLines(ctx context.Context, asOf *time.Time) (map[string]portsrepo.AccountTotals, error) {
	query := `
		SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.status IN ` + contributingStatuses
	args := []any{}
	if asOf != nil {
		query += ` AND e.entry_date <= $1`
		args = append(args, *asOf)
	}
	query += ` GROUP BY l.account_id;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum all account lines: %w", err)
	}
	defer rows.Close()

	totalsMap := make(map[string]portsrepo.AccountTotals)
	for rows.Next() {
		var totals portsrepo.AccountTotals
		if err := rows.Scan(&totals.AccountID, &totals.TotalDebit, &totals.TotalCredit); err != nil {
			return nil, fmt.Errorf("failed to scan account totals row: %w", err)
		}
		totalsMap[totals.AccountID] = totals
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals rows: %w", err)
	}
	return totalsMap, nil
}

// SumAccountActivity returns net signed movement per account over [from, to]
// for the given types. The sign convention puts positive on the account's
// normal side, computed in SQL so the whole report is one scan.
func (r *PgxLedgerRepository) SumAccountActivity(ctx context.Context, types []domain.AccountType, from, to time.Time) ([]domain.AccountActivity, error) {
	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}

	query := `
		SELECT a.account_id, a.account_number, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
		                         THEN l.debit - l.credit
		                         ELSE l.credit - l.debit END), 0)
		FROM accounts a
		JOIN journal_entry_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.account_type = ANY($1)
		  AND e.status IN ` + contributingStatuses + `
		  AND e.entry_date >= $2
		  AND e.entry_date <= $3
		GROUP BY a.account_id, a.account_number, a.name, a.account_type
		ORDER BY a.account_number;`

	rows, err := r.pool.Query(ctx, query, typeStrings, from, to)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.AccountActivity{}, nil
		}
		return nil, fmt.Errorf("failed to sum account activity: %w", err)
	}
	defer rows.Close()

	return scanAccountActivity(rows)
}

// SumAccountBalances returns per-account net balances as of asOf with no
// lower date bound. Dateless opening balances are folded in, matching the
// balance engine's opening seed rule, so the result is the account's true
// balance rather than a window of movement.
func (r *PgxLedgerRepository) SumAccountBalances(ctx context.Context, types []domain.AccountType, asOf time.Time) ([]domain.AccountActivity, error) {
	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}

	query := `
		SELECT a.account_id, a.account_number, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN e.status IN ` + contributingStatuses + `
		                          AND e.entry_date <= $2
		                         THEN CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
		                                   THEN l.debit - l.credit
		                                   ELSE l.credit - l.debit END
		                         ELSE 0 END), 0)
		       + CASE WHEN a.opening_balance_date IS NULL THEN a.opening_balance ELSE 0 END
		FROM accounts a
		LEFT JOIN journal_entry_lines l ON l.account_id = a.account_id
		LEFT JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.account_type = ANY($1)
		GROUP BY a.account_id, a.account_number, a.name, a.account_type,
		         a.opening_balance, a.opening_balance_date
		ORDER BY a.account_number;`

	rows, err := r.pool.Query(ctx, query, typeStrings, asOf)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.AccountActivity{}, nil
		}
		return nil, fmt.Errorf("failed to sum account balances: %w", err)
	}
	defer rows.Close()

	return scanAccountActivity(rows)
}

func scanAccountActivity(rows pgx.Rows) ([]domain.AccountActivity, error) {
	activity := []domain.AccountActivity{}
	for rows.Next() {
		var act domain.AccountActivity
		var accountType string
		if err := rows.Scan(&act.AccountID, &act.AccountNumber, &act.AccountName, &accountType, &act.NetAmount); err != nil {
			return nil, fmt.Errorf("failed to scan account activity row: %w", err)
		}
		act.AccountType = domain.AccountType(accountType)
		activity = append(activity, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return activity, nil
}
