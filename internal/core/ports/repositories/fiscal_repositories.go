package repositories

import (
	"context"
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal period data
type FiscalPeriodReader interface {
	// FindPeriodByID retrieves a specific period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the period whose date range contains the
	// given date, or apperrors.ErrNotFound if no period covers it.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriodsByYear retrieves all periods of a fiscal year ordered by
	// period number.
	ListPeriodsByYear(ctx context.Context, fiscalYear int) ([]domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal period data
type FiscalPeriodWriter interface {
	// SavePeriods persists a year's periods atomically. An overlapping or
	// duplicate year surfaces as apperrors.ErrDuplicate.
	SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error

	// ClosePeriod flips a period to closed, recording who closed it and when.
	// Closing an already-closed period is a no-op.
	ClosePeriod(ctx context.Context, periodID string, closedBy string, closedAt time.Time) error
}

// FiscalPeriodRepository combines all fiscal-period repository interfaces.
type FiscalPeriodRepository interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}
