package services

import (
	"context"
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
)

// FiscalSvcFacade manages fiscal periods and the year-end close.
type FiscalSvcFacade interface {
	// CreateFiscalYear generates twelve contiguous calendar periods for the
	// year (leap-year aware).
	CreateFiscalYear(ctx context.Context, year int, userID string) ([]domain.FiscalPeriod, error)

	// ClosePeriod idempotently locks a period. Closed periods reject new
	// postings dated inside them.
	ClosePeriod(ctx context.Context, periodID string, closedBy string) (*domain.FiscalPeriod, error)

	// CloseFiscalYear zeroes every revenue and expense account into retained
	// earnings with a single auto-posted closing entry. When nothing carries
	// a balance the result reports Closed=false and no entry is written.
	CloseFiscalYear(ctx context.Context, year int, retainedEarningsAccountID string, userID string) (*domain.YearEndCloseResult, error)

	GetPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)
	ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error)
}
