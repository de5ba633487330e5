package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agribooks/ledger-core/internal/apperrors"
	"github.com/agribooks/ledger-core/internal/core/domain"
	portsrepo "github.com/agribooks/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
	"github.com/agribooks/ledger-core/internal/dto"
	"github.com/agribooks/ledger-core/internal/utils/accounting"
)

var (
	ErrFiscalYearExists       = fmt.Errorf("%w: fiscal year already exists", apperrors.ErrDuplicate)
	ErrNotRetainedEarnings    = fmt.Errorf("%w: target account must be an equity account", apperrors.ErrValidation)
	ErrFiscalYearNotGenerated = fmt.Errorf("%w: fiscal year has no periods", apperrors.ErrNotFound)
)

// fiscalService implements fiscal period management and the year-end close.
type fiscalService struct {
	BaseService
	fiscalRepo  portsrepo.FiscalPeriodRepository
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerRepository
	journalSvc  portssvc.JournalSvcFacade
}

// NewFiscalService creates a new fiscal period service.
func NewFiscalService(fiscalRepo portsrepo.FiscalPeriodRepository, accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerRepository, journalSvc portssvc.JournalSvcFacade) portssvc.FiscalSvcFacade {
	return &fiscalService{
		fiscalRepo:  fiscalRepo,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.FiscalSvcFacade = (*fiscalService)(nil)

// CreateFiscalYear generates twelve contiguous monthly periods for the year.
// Month-end arithmetic goes through AddDate so February stays correct in leap
// years.
func (s *fiscalService) CreateFiscalYear(ctx context.Context, year int, userID string) ([]domain.FiscalPeriod, error) {
	existing, err := s.fiscalRepo.ListPeriodsByYear(ctx, year)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check fiscal year %d: %w", year, err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %d", ErrFiscalYearExists, year)
	}

	now := time.Now().UTC()
	periods := make([]domain.FiscalPeriod, 0, 12)
	for month := 1; month <= 12; month++ {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
		periods = append(periods, domain.FiscalPeriod{
			PeriodID:     uuid.NewString(),
			Name:         start.Format("Jan 2006"),
			FiscalYear:   year,
			PeriodNumber: month,
			StartDate:    start,
			EndDate:      end,
			IsClosed:     false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	if err := s.fiscalRepo.SavePeriods(ctx, periods); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal year", slog.Int("year", year))
		return nil, fmt.Errorf("failed to save fiscal year %d: %w", year, err)
	}

	s.LogInfo(ctx, "Fiscal year created", slog.Int("year", year), slog.Int("periods", len(periods)))
	return periods, nil
}

// ClosePeriod locks a period against further postings. Closing an already
// closed period returns it unchanged.
func (s *fiscalService) ClosePeriod(ctx context.Context, periodID string, closedBy string) (*domain.FiscalPeriod, error) {
	period, err := s.fiscalRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.IsClosed {
		return period, nil
	}

	closedAt := time.Now().UTC()
	if err := s.fiscalRepo.ClosePeriod(ctx, periodID, closedBy, closedAt); err != nil {
		s.LogError(ctx, err, "Failed to close period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to close period %s: %w", periodID, err)
	}

	period.IsClosed = true
	period.ClosedAt = &closedAt
	period.ClosedBy = closedBy
	s.LogInfo(ctx, "Fiscal period closed",
		slog.String("period_id", periodID),
		slog.String("name", period.Name),
		slog.String("closed_by", closedBy))
	return period, nil
}

// CloseFiscalYear zeroes every revenue and expense balance as of the year's
// last day into retained earnings with one auto-posted closing entry dated
// that same day. It must run while December is still open; the closing entry
// goes through the normal posting path and a locked period would reject it.
func (s *fiscalService) CloseFiscalYear(ctx context.Context, year int, retainedEarningsAccountID string, userID string) (*domain.YearEndCloseResult, error) {
	periods, err := s.fiscalRepo.ListPeriodsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods for year %d: %w", year, err)
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrFiscalYearNotGenerated, year)
	}

	retained, err := s.accountRepo.FindAccountByID(ctx, retainedEarningsAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find retained earnings account %s: %w", retainedEarningsAccountID, err)
	}
	if retained.AccountType != domain.Equity {
		return nil, fmt.Errorf("%w: account %s is %s", ErrNotRetainedEarnings, retained.AccountID, retained.AccountType)
	}

	to := periods[len(periods)-1].EndDate
	// Balances as of the year's last day, not just in-year movement: residue
	// from an earlier year that was never closed must be swept too, so that
	// every revenue and expense account reads zero after the close.
	balances, err := s.ledgerRepo.SumAccountBalances(ctx, []domain.AccountType{domain.Revenue, domain.Expense}, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum year-end balances", slog.Int("year", year))
		return nil, fmt.Errorf("failed to sum balances for year %d: %w", year, err)
	}

	// Each balance is signed on the account's normal side, so zeroing an
	// account means booking the same amount on the opposite side.
	netIncome := decimal.Zero
	lines := make([]dto.CreateEntryLineRequest, 0, len(balances)+1)
	for _, act := range balances {
		if act.NetAmount.IsZero() {
			continue
		}
		debit, credit := accounting.NormalizeBalance(act.AccountType, act.NetAmount)
		lines = append(lines, dto.CreateEntryLineRequest{
			AccountID:   act.AccountID,
			Description: fmt.Sprintf("Close %s %s", act.AccountNumber, act.AccountName),
			Debit:       credit,
			Credit:      debit,
		})
		if act.AccountType == domain.Revenue {
			netIncome = netIncome.Add(act.NetAmount)
		} else {
			netIncome = netIncome.Sub(act.NetAmount)
		}
	}

	result := &domain.YearEndCloseResult{FiscalYear: year, NetIncome: netIncome}
	if len(lines) == 0 {
		s.LogInfo(ctx, "Year-end close skipped, nothing to close", slog.Int("year", year))
		return result, nil
	}

	reDebit, reCredit := accounting.NormalizeBalance(domain.Equity, netIncome)
	lines = append(lines, dto.CreateEntryLineRequest{
		AccountID:   retained.AccountID,
		Description: fmt.Sprintf("Net income for fiscal year %d", year),
		Debit:       reDebit,
		Credit:      reCredit,
	})

	sourceID := fmt.Sprintf("%d", year)
	entry, err := s.journalSvc.CreateEntry(ctx, dto.CreateEntryRequest{
		EntryDate:  to,
		Memo:       fmt.Sprintf("Year-end close %d", year),
		SourceType: string(domain.SourceYearEndClose),
		SourceID:   &sourceID,
		Adjusting:  true,
		AutoPost:   true,
		Lines:      lines,
	}, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to post closing entry", slog.Int("year", year))
		return nil, fmt.Errorf("failed to post closing entry for year %d: %w", year, err)
	}

	result.Closed = true
	result.ClosingEntryID = entry.EntryID
	result.AccountsClosed = len(lines) - 1
	s.LogInfo(ctx, "Fiscal year closed",
		slog.Int("year", year),
		slog.String("closing_entry_id", entry.EntryID),
		slog.String("net_income", netIncome.String()),
		slog.Int("accounts_closed", result.AccountsClosed))
	return result, nil
}

// GetPeriodForDate resolves the period containing the given date.
func (s *fiscalService) GetPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.fiscalRepo.FindPeriodForDate(ctx, date)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period for date", slog.Time("date", date))
		}
		return nil, err
	}
	return period, nil
}

// ListPeriods returns a year's periods in period-number order.
func (s *fiscalService) ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	periods, err := s.fiscalRepo.ListPeriodsByYear(ctx, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.Int("year", year))
		return nil, fmt.Errorf("failed to list periods for year %d: %w", year, err)
	}
	return periods, nil
}
