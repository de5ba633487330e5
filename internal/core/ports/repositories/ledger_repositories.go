package repositories

import (
	"context"
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountTotals holds the raw debit/credit sums for one account.
type AccountTotals struct {
	AccountID   string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// LedgerRepository defines the read-side queries over posted journal data.
// Every query filters to POSTED/RECONCILED entries; draft and voided entries
// are invisible here. Each method is a single aggregation query so one call
// always observes a consistent snapshot.
type LedgerRepository interface {
	// SumAccountLines returns the account's total debits and credits over
	// contributing entries dated at or before asOf (no bound when asOf is nil).
	SumAccountLines(ctx context.Context, accountID string, asOf *time.Time) (AccountTotals, error)

	// SumAccountLinesBefore returns totals for entries dated strictly before
	// the given date, used to seed ledger opening balances.
	SumAccountLinesBefore(ctx context.Context, accountID string, before time.Time) (AccountTotals, error)

	// FindLedgerLines returns an account's lines joined with their entry
	// headers over [start, end], ordered by (entry_date, entry_number).
	FindLedgerLines(ctx context.Context, accountID string, start, end *time.Time) ([]domain.LedgerLine, error)

	// SumAllAccountLines returns per-account totals across every account with
	// at least one contributing line dated at or before asOf.
	SumAllAccountLines(ctx context.Context, asOf *time.Time) (map[string]AccountTotals, error)

	// SumAccountActivity returns net signed activity for accounts of the given
	// types over [from, to], applying the normal-balance sign convention.
	SumAccountActivity(ctx context.Context, types []domain.AccountType, from, to time.Time) ([]domain.AccountActivity, error)

	// SumAccountBalances returns the net signed balance as of asOf (no lower
	// bound, dateless opening balances included) for accounts of the given
	// types. The year-end close uses this so residue from earlier years is
	// swept even when those years were never closed themselves.
	SumAccountBalances(ctx context.Context, types []domain.AccountType, asOf time.Time) ([]domain.AccountActivity, error)
}
