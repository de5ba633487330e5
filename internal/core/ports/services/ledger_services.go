package services

import (
	"context"
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the read-side balance engine. It owns no mutable state;
// every answer is a projection over posted journal data.
type LedgerSvcFacade interface {
	// GetAccountBalance computes an account's balance as of a date (no upper
	// bound when asOf is nil), applying the normal-balance sign convention.
	GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// GetAccountLedger replays an account over [start, end] with running
	// balances, seeded by the balance strictly before start.
	GetAccountLedger(ctx context.Context, accountID string, start, end *time.Time) (*domain.AccountLedger, error)

	// GetTrialBalance normalizes every active account's balance into its
	// normal-side column and proves the totals agree.
	GetTrialBalance(ctx context.Context, asOf *time.Time) (*domain.TrialBalanceReport, error)

	// GetProfitAndLoss summarizes revenue and expense activity over a window.
	GetProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error)
}
