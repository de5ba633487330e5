package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/agribooks/ledger-core/internal/apperrors"
	"github.com/agribooks/ledger-core/internal/core/domain"
	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
	"github.com/agribooks/ledger-core/internal/core/services"
	"github.com/agribooks/ledger-core/internal/dto"
)

type FiscalServiceTestSuite struct {
	suite.Suite
	mockFiscalRepo  *MockFiscalRepository
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockJournalSvc  *MockJournalService
	service         portssvc.FiscalSvcFacade

	userID string
}

func (s *FiscalServiceTestSuite) SetupTest() {
	s.mockFiscalRepo = new(MockFiscalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockJournalSvc = new(MockJournalService)
	s.service = services.NewFiscalService(s.mockFiscalRepo, s.mockAccountRepo, s.mockLedgerRepo, s.mockJournalSvc)
	s.userID = uuid.NewString()
}

func (s *FiscalServiceTestSuite) yearPeriods(year int) []domain.FiscalPeriod {
	periods := make([]domain.FiscalPeriod, 0, 12)
	for month := 1; month <= 12; month++ {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		periods = append(periods, domain.FiscalPeriod{
			PeriodID:     uuid.NewString(),
			FiscalYear:   year,
			PeriodNumber: month,
			StartDate:    start,
			EndDate:      start.AddDate(0, 1, 0).AddDate(0, 0, -1),
		})
	}
	return periods
}

func (s *FiscalServiceTestSuite) TestCreateFiscalYear_TwelvePeriods() {
	ctx := context.Background()

	s.mockFiscalRepo.On("ListPeriodsByYear", ctx, 2026).Return([]domain.FiscalPeriod{}, nil).Once()
	s.mockFiscalRepo.On("SavePeriods", ctx, mock.MatchedBy(func(periods []domain.FiscalPeriod) bool {
		return len(periods) == 12 &&
			periods[0].StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			periods[11].EndDate.Equal(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	periods, err := s.service.CreateFiscalYear(ctx, 2026, s.userID)

	s.Require().NoError(err)
	s.Require().Len(periods, 12)
	s.Equal("Jan 2026", periods[0].Name)
	s.Equal(1, periods[0].PeriodNumber)
	// Contiguity: each period starts the day after the previous one ends.
	for i := 1; i < 12; i++ {
		s.Equal(periods[i-1].EndDate.AddDate(0, 0, 1), periods[i].StartDate)
	}
	s.mockFiscalRepo.AssertExpectations(s.T())
}

func (s *FiscalServiceTestSuite) TestCreateFiscalYear_LeapFebruary() {
	ctx := context.Background()

	s.mockFiscalRepo.On("ListPeriodsByYear", ctx, 2028).Return([]domain.FiscalPeriod{}, nil).Once()
	s.mockFiscalRepo.On("SavePeriods", ctx, mock.Anything).Return(nil).Once()

	periods, err := s.service.CreateFiscalYear(ctx, 2028, s.userID)

	s.Require().NoError(err)
	s.Equal(time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), periods[1].EndDate)
}

func (s *FiscalServiceTestSuite) TestCreateFiscalYear_Duplicate() {
	ctx := context.Background()

	s.mockFiscalRepo.On("ListPeriodsByYear", ctx, 2026).Return(s.yearPeriods(2026), nil).Once()

	_, err := s.service.CreateFiscalYear(ctx, 2026, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrFiscalYearExists)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockFiscalRepo.AssertNotCalled(s.T(), "SavePeriods", mock.Anything, mock.Anything)
}

func (s *FiscalServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()

	s.mockFiscalRepo.On("FindPeriodByID", ctx, periodID).
		Return(&domain.FiscalPeriod{PeriodID: periodID, Name: "Mar 2026", IsClosed: false}, nil).Once()
	s.mockFiscalRepo.On("ClosePeriod", ctx, periodID, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	period, err := s.service.ClosePeriod(ctx, periodID, s.userID)

	s.Require().NoError(err)
	s.True(period.IsClosed)
	s.NotNil(period.ClosedAt)
	s.Equal(s.userID, period.ClosedBy)
	s.mockFiscalRepo.AssertExpectations(s.T())
}

func (s *FiscalServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	periodID := uuid.NewString()
	closedAt := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	s.mockFiscalRepo.On("FindPeriodByID", ctx, periodID).
		Return(&domain.FiscalPeriod{PeriodID: periodID, IsClosed: true, ClosedAt: &closedAt}, nil).Once()

	period, err := s.service.ClosePeriod(ctx, periodID, s.userID)

	s.Require().NoError(err)
	s.True(period.IsClosed)
	s.mockFiscalRepo.AssertNotCalled(s.T(), "ClosePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *FiscalServiceTestSuite) TestCloseFiscalYear_PostsClosingEntry() {
	ctx := context.Background()
	retainedID := uuid.NewString()
	retained := &domain.Account{AccountID: retainedID, AccountType: domain.Equity, IsActive: true}

	s.mockFiscalRepo.On("ListPeriodsByYear", ctx, 2026).Return(s.yearPeriods(2026), nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, retainedID).Return(retained, nil).Once()
	s.mockLedgerRepo.On("SumAccountBalances", ctx, []domain.AccountType{domain.Revenue, domain.Expense},
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)).
		Return([]domain.AccountActivity{
			{AccountID: "r-1", AccountNumber: "4000", AccountName: "Crop Sales", AccountType: domain.Revenue, NetAmount: decimal.NewFromInt(9000)},
			{AccountID: "e-1", AccountNumber: "6000", AccountName: "Operating Expenses", AccountType: domain.Expense, NetAmount: decimal.NewFromInt(6500)},
		}, nil).Once()
	s.mockJournalSvc.On("CreateEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		if req.SourceType != string(domain.SourceYearEndClose) || !req.AutoPost || len(req.Lines) != 3 {
			return false
		}
		// Revenue zeroed by debit, expense by credit, net income credited
		// to retained earnings.
		return req.Lines[0].Debit.Equal(decimal.NewFromInt(9000)) &&
			req.Lines[1].Credit.Equal(decimal.NewFromInt(6500)) &&
			req.Lines[2].AccountID == retainedID &&
			req.Lines[2].Credit.Equal(decimal.NewFromInt(2500))
	}), s.userID).
		Return(&domain.JournalEntry{EntryID: "close-1", EntryNumber: 99, Status: domain.Posted}, nil).Once()

	result, err := s.service.CloseFiscalYear(ctx, 2026, retainedID, s.userID)

	s.Require().NoError(err)
	s.True(result.Closed)
	s.Equal("close-1", result.ClosingEntryID)
	s.Equal(2, result.AccountsClosed)
	s.True(result.NetIncome.Equal(decimal.NewFromInt(2500)), "net %s", result.NetIncome)
	s.mockJournalSvc.AssertExpectations(s.T())
}

func (s *FiscalServiceTestSuite) TestCloseFiscalYear_NetLoss() {
	ctx := context.Background()
	retainedID := uuid.NewString()
	retained := &domain.Account{AccountID: retainedID, AccountType: domain.Equity, IsActive: true}

	s.mockFiscalRepo.On("ListPeriodsByYear", ctx, 2026).Return(s.yearPeriods(2026), nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, retainedID).Return(retained, nil).Once()
	s.mockLedgerRepo.On("SumAccountBalances", ctx, mock.Anything, mock.Anything).
		Return([]domain.AccountActivity{
			{AccountID: "e-1", AccountType: domain.Expense, NetAmount: decimal.NewFromInt(4000)},
		}, nil).Once()
	s.mockJournalSvc.On("CreateEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		// A loss debits retained earnings.
		last := req.Lines[len(req.Lines)-1]
		return last.AccountID == retainedID && last.Debit.Equal(decimal.NewFromInt(4000))
	}), s.userID).
		Return(&domain.JournalEntry{EntryID: "close-2", Status: domain.Posted}, nil).Once()

	result, err := s.service.CloseFiscalYear(ctx, 2026, retainedID, s.userID)

	s.Require().NoError(err)
	s.True(result.NetIncome.Equal(decimal.NewFromInt(-4000)), "net %s", result.NetIncome)
}

func (s *FiscalServiceTestSuite) TestCloseFiscalYear_SweepsResidueFromEarlierYears() {
	ctx := context.Background()
	retainedID := uuid.NewString()
	retained := &domain.Account{AccountID: retainedID, AccountType: domain.Equity, IsActive: true}

	// 1000 of the revenue balance was booked in 2025, which was never closed.
	// The close works from the balance as of 2026-12-31, so the full 1500 is
	// swept and the account reads zero afterwards.
	s.mockFiscalRepo.On("ListPeriodsByYear", ctx, 2026).Return(s.yearPeriods(2026), nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, retainedID).Return(retained, nil).Once()
	s.mockLedgerRepo.On("SumAccountBalances", ctx, []domain.AccountType{domain.Revenue, domain.Expense},
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)).
		Return([]domain.AccountActivity{
			{AccountID: "r-1", AccountNumber: "4000", AccountName: "Crop Sales", AccountType: domain.Revenue, NetAmount: decimal.NewFromInt(1500)},
		}, nil).Once()
	s.mockJournalSvc.On("CreateEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return len(req.Lines) == 2 &&
			req.Lines[0].Debit.Equal(decimal.NewFromInt(1500)) &&
			req.Lines[1].AccountID == retainedID &&
			req.Lines[1].Credit.Equal(decimal.NewFromInt(1500))
	}), s.userID).
		Return(&domain.JournalEntry{EntryID: "close-3", Status: domain.Posted}, nil).Once()

	result, err := s.service.CloseFiscalYear(ctx, 2026, retainedID, s.userID)

	s.Require().NoError(err)
	s.True(result.Closed)
	s.True(result.NetIncome.Equal(decimal.NewFromInt(1500)), "net %s", result.NetIncome)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *FiscalServiceTestSuite) TestCloseFiscalYear_NothingToClose() {
	ctx := context.Background()
	retainedID := uuid.NewString()
	retained := &domain.Account{AccountID: retainedID, AccountType: domain.Equity, IsActive: true}

	s.mockFiscalRepo.On("ListPeriodsByYear", ctx, 2026).Return(s.yearPeriods(2026), nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, retainedID).Return(retained, nil).Once()
	s.mockLedgerRepo.On("SumAccountBalances", ctx, mock.Anything, mock.Anything).
		Return([]domain.AccountActivity{}, nil).Once()

	result, err := s.service.CloseFiscalYear(ctx, 2026, retainedID, s.userID)

	s.Require().NoError(err)
	s.False(result.Closed)
	s.Empty(result.ClosingEntryID)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *FiscalServiceTestSuite) TestCloseFiscalYear_NonEquityTarget() {
	ctx := context.Background()
	accountID := uuid.NewString()

	s.mockFiscalRepo.On("ListPeriodsByYear", ctx, 2026).Return(s.yearPeriods(2026), nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, AccountType: domain.Asset, IsActive: true}, nil).Once()

	_, err := s.service.CloseFiscalYear(ctx, 2026, accountID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrNotRetainedEarnings)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FiscalServiceTestSuite) TestCloseFiscalYear_NoPeriods() {
	ctx := context.Background()

	s.mockFiscalRepo.On("ListPeriodsByYear", ctx, 2031).Return([]domain.FiscalPeriod{}, nil).Once()

	_, err := s.service.CloseFiscalYear(ctx, 2031, uuid.NewString(), s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrFiscalYearNotGenerated)
}

func TestFiscalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalServiceTestSuite))
}
