package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/agribooks/ledger-core/internal/core/domain"
	portsrepo "github.com/agribooks/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
	"github.com/agribooks/ledger-core/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.LedgerSvcFacade
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.service = services.NewLedgerService(s.mockAccountRepo, s.mockLedgerRepo)
}

func (s *LedgerServiceTestSuite) assetAccount() *domain.Account {
	return &domain.Account{
		AccountID:      uuid.NewString(),
		AccountNumber:  "1010",
		Name:           "Operating Checking",
		AccountType:    domain.Asset,
		IsActive:       true,
		OpeningBalance: decimal.Zero,
	}
}

func (s *LedgerServiceTestSuite) TestGetAccountBalance_DebitNormal() {
	ctx := context.Background()
	account := s.assetAccount()

	s.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	s.mockLedgerRepo.On("SumAccountLines", ctx, account.AccountID, (*time.Time)(nil)).
		Return(portsrepo.AccountTotals{
			AccountID:   account.AccountID,
			TotalDebit:  decimal.NewFromInt(900),
			TotalCredit: decimal.NewFromInt(250),
		}, nil).Once()

	balance, err := s.service.GetAccountBalance(ctx, account.AccountID, nil)

	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(650)), "got %s", balance)
}

func (s *LedgerServiceTestSuite) TestGetAccountBalance_CreditNormal() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		AccountType:    domain.Liability,
		IsActive:       true,
		OpeningBalance: decimal.Zero,
	}

	s.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	s.mockLedgerRepo.On("SumAccountLines", ctx, account.AccountID, (*time.Time)(nil)).
		Return(portsrepo.AccountTotals{
			TotalDebit:  decimal.NewFromInt(100),
			TotalCredit: decimal.NewFromInt(400),
		}, nil).Once()

	balance, err := s.service.GetAccountBalance(ctx, account.AccountID, nil)

	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(300)), "got %s", balance)
}

func (s *LedgerServiceTestSuite) TestGetAccountBalance_DatelessOpeningBalanceCounted() {
	ctx := context.Background()
	account := s.assetAccount()
	account.OpeningBalance = decimal.NewFromInt(1000)
	// No opening date: the amount was never posted as an entry, so the
	// stored seed counts directly.
	account.OpeningBalanceDate = nil

	s.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	s.mockLedgerRepo.On("SumAccountLines", ctx, account.AccountID, (*time.Time)(nil)).
		Return(portsrepo.AccountTotals{
			TotalDebit:  decimal.NewFromInt(200),
			TotalCredit: decimal.Zero,
		}, nil).Once()

	balance, err := s.service.GetAccountBalance(ctx, account.AccountID, nil)

	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(1200)), "got %s", balance)
}

func (s *LedgerServiceTestSuite) TestGetAccountBalance_DatedOpeningBalanceNotDoubleCounted() {
	ctx := context.Background()
	account := s.assetAccount()
	openingDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	account.OpeningBalance = decimal.NewFromInt(1000)
	account.OpeningBalanceDate = &openingDate

	// The opening amount flows through the posted opening entry, which the
	// line totals already include.
	s.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	s.mockLedgerRepo.On("SumAccountLines", ctx, account.AccountID, (*time.Time)(nil)).
		Return(portsrepo.AccountTotals{
			TotalDebit:  decimal.NewFromInt(1200),
			TotalCredit: decimal.Zero,
		}, nil).Once()

	balance, err := s.service.GetAccountBalance(ctx, account.AccountID, nil)

	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(1200)), "got %s", balance)
}

func (s *LedgerServiceTestSuite) TestGetAccountLedger_RunningBalances() {
	ctx := context.Background()
	account := s.assetAccount()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	s.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	s.mockLedgerRepo.On("SumAccountLinesBefore", ctx, account.AccountID, start).
		Return(portsrepo.AccountTotals{
			TotalDebit:  decimal.NewFromInt(500),
			TotalCredit: decimal.NewFromInt(100),
		}, nil).Once()
	s.mockLedgerRepo.On("FindLedgerLines", ctx, account.AccountID, &start, &end).
		Return([]domain.LedgerLine{
			{EntryNumber: 5, Debit: decimal.NewFromInt(300), Credit: decimal.Zero},
			{EntryNumber: 6, Debit: decimal.Zero, Credit: decimal.NewFromInt(150)},
		}, nil).Once()

	ledger, err := s.service.GetAccountLedger(ctx, account.AccountID, &start, &end)

	s.Require().NoError(err)
	s.True(ledger.OpeningBalance.Equal(decimal.NewFromInt(400)), "opening %s", ledger.OpeningBalance)
	s.Require().Len(ledger.Lines, 2)
	s.True(ledger.Lines[0].RunningBalance.Equal(decimal.NewFromInt(700)), "first %s", ledger.Lines[0].RunningBalance)
	s.True(ledger.Lines[1].RunningBalance.Equal(decimal.NewFromInt(550)), "second %s", ledger.Lines[1].RunningBalance)
	s.True(ledger.EndingBalance.Equal(decimal.NewFromInt(550)), "ending %s", ledger.EndingBalance)
}

func (s *LedgerServiceTestSuite) TestGetTrialBalance_BalancedAndNormalized() {
	ctx := context.Background()
	checking := domain.Account{AccountID: "a-1", AccountNumber: "1010", Name: "Checking", AccountType: domain.Asset, IsActive: true, OpeningBalance: decimal.Zero}
	loan := domain.Account{AccountID: "l-1", AccountNumber: "2100", Name: "Equipment Loan", AccountType: domain.Liability, IsActive: true, OpeningBalance: decimal.Zero}
	dormant := domain.Account{AccountID: "d-1", AccountNumber: "6000", Name: "Dormant", AccountType: domain.Expense, IsActive: true, OpeningBalance: decimal.Zero}
	inactive := domain.Account{AccountID: "i-1", AccountNumber: "9999", Name: "Closed", AccountType: domain.Expense, IsActive: false, OpeningBalance: decimal.Zero}

	s.mockAccountRepo.On("ListAccountsByTypes", ctx, mock.Anything).
		Return([]domain.Account{checking, loan, dormant, inactive}, nil).Once()
	s.mockLedgerRepo.On("SumAllAccountLines", ctx, mock.Anything).
		Return(map[string]portsrepo.AccountTotals{
			"a-1": {AccountID: "a-1", TotalDebit: decimal.NewFromInt(800), TotalCredit: decimal.NewFromInt(300)},
			"l-1": {AccountID: "l-1", TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(500)},
			"i-1": {AccountID: "i-1", TotalDebit: decimal.NewFromInt(50), TotalCredit: decimal.Zero},
		}, nil).Once()

	report, err := s.service.GetTrialBalance(ctx, nil)

	s.Require().NoError(err)
	// Zero-balance and inactive accounts drop out.
	s.Require().Len(report.Rows, 2)
	s.Equal("1010", report.Rows[0].AccountNumber)
	s.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(500)))
	s.True(report.Rows[0].Credit.IsZero())
	s.Equal("2100", report.Rows[1].AccountNumber)
	s.True(report.Rows[1].Credit.Equal(decimal.NewFromInt(500)))
	s.True(report.TotalDebits.Equal(report.TotalCredits))
	s.True(report.Balanced)
}

func (s *LedgerServiceTestSuite) TestGetTrialBalance_ContraBalanceFlipsColumn() {
	ctx := context.Background()
	overdrawn := domain.Account{AccountID: "a-2", AccountNumber: "1020", Name: "Overdrawn", AccountType: domain.Asset, IsActive: true, OpeningBalance: decimal.Zero}

	s.mockAccountRepo.On("ListAccountsByTypes", ctx, mock.Anything).
		Return([]domain.Account{overdrawn}, nil).Once()
	s.mockLedgerRepo.On("SumAllAccountLines", ctx, mock.Anything).
		Return(map[string]portsrepo.AccountTotals{
			"a-2": {AccountID: "a-2", TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(400)},
		}, nil).Once()

	report, err := s.service.GetTrialBalance(ctx, nil)

	s.Require().NoError(err)
	s.Require().Len(report.Rows, 1)
	// A credit balance on a debit-normal account shows in the credit column.
	s.True(report.Rows[0].Debit.IsZero())
	s.True(report.Rows[0].Credit.Equal(decimal.NewFromInt(300)))
	s.False(report.Balanced)
}

func (s *LedgerServiceTestSuite) TestGetProfitAndLoss() {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	s.mockLedgerRepo.On("SumAccountActivity", ctx, []domain.AccountType{domain.Revenue, domain.Expense}, from, to).
		Return([]domain.AccountActivity{
			{AccountID: "r-1", AccountNumber: "4000", AccountType: domain.Revenue, NetAmount: decimal.NewFromInt(9000)},
			{AccountID: "e-1", AccountNumber: "6000", AccountType: domain.Expense, NetAmount: decimal.NewFromInt(6500)},
		}, nil).Once()

	report, err := s.service.GetProfitAndLoss(ctx, from, to)

	s.Require().NoError(err)
	s.Len(report.Revenue, 1)
	s.Len(report.Expenses, 1)
	s.True(report.NetProfit.Equal(decimal.NewFromInt(2500)), "net %s", report.NetProfit)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
