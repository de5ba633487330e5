package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
	portsrepo "github.com/agribooks/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
	"github.com/agribooks/ledger-core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerService is the pure read side: it computes balances, ledgers and the
// trial balance by replaying posted journal data. It holds no mutable state;
// recomputation from storage always yields the same answer.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// openingSeed resolves the account's stored opening balance contribution.
// When an opening date is present the opening amount was posted as a journal
// entry at creation time and already flows through the replayed lines, so the
// seed is zero. A dateless opening balance (legacy import) has no entry and
// is counted directly.
func openingSeed(account *domain.Account) decimal.Decimal {
	if account.OpeningBalanceDate != nil {
		return decimal.Zero
	}
	return account.OpeningBalance
}

// signedTotal folds raw debit/credit sums into the account's normal direction.
func signedTotal(accountType domain.AccountType, totals portsrepo.AccountTotals) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return totals.TotalDebit.Sub(totals.TotalCredit)
	}
	return totals.TotalCredit.Sub(totals.TotalDebit)
}

// GetAccountBalance computes an account's balance as of a date.
func (s *ledgerService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	totals, err := s.ledgerRepo.SumAccountLines(ctx, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account lines", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}

	return openingSeed(account).Add(signedTotal(account.AccountType, totals)), nil
}

// GetAccountLedger replays an account's transactions over a window with
// running balances.
func (s *ledgerService) GetAccountLedger(ctx context.Context, accountID string, start, end *time.Time) (*domain.AccountLedger, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	opening := openingSeed(account)
	if start != nil {
		priorTotals, err := s.ledgerRepo.SumAccountLinesBefore(ctx, accountID, *start)
		if err != nil {
			s.LogError(ctx, err, "Failed to sum prior account lines", slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to compute opening balance for account %s: %w", accountID, err)
		}
		opening = opening.Add(signedTotal(account.AccountType, priorTotals))
	}

	lines, err := s.ledgerRepo.FindLedgerLines(ctx, accountID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to fetch ledger for account %s: %w", accountID, err)
	}

	running := opening
	for i := range lines {
		signed, err := accounting.SignedAmount(domain.JournalEntryLine{
			AccountID: accountID,
			Debit:     lines[i].Debit,
			Credit:    lines[i].Credit,
		}, account.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to compute running balance for account %s: %w", accountID, err)
		}
		running = running.Add(signed)
		lines[i].RunningBalance = running
	}

	ledger := &domain.AccountLedger{
		AccountID:      accountID,
		OpeningBalance: opening,
		Lines:          lines,
		EndingBalance:  running,
	}
	s.LogDebug(ctx, "Account ledger computed", slog.String("account_id", accountID), slog.Int("line_count", len(lines)))
	return ledger, nil
}

// GetTrialBalance proves total debits equal total credits across all active
// accounts as of a date. One aggregation query backs the whole report so it
// observes a consistent snapshot.
func (s *ledgerService) GetTrialBalance(ctx context.Context, asOf *time.Time) (*domain.TrialBalanceReport, error) {
	accounts, err := s.accountRepo.ListAccountsByTypes(ctx, []domain.AccountType{
		domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for trial balance")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	totalsByAccount, err := s.ledgerRepo.SumAllAccountLines(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum lines for trial balance")
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}

	report := &domain.TrialBalanceReport{
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	if asOf != nil {
		report.AsOf = *asOf
	} else {
		report.AsOf = time.Now().UTC()
	}

	for _, account := range accounts {
		if !account.IsActive {
			continue
		}
		balance := openingSeed(&account).Add(signedTotal(account.AccountType, totalsByAccount[account.AccountID]))
		if balance.IsZero() {
			continue
		}
		debit, credit := accounting.NormalizeBalance(account.AccountType, balance)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:     account.AccountID,
			AccountNumber: account.AccountNumber,
			AccountName:   account.Name,
			AccountType:   account.AccountType,
			Debit:         debit,
			Credit:        credit,
		})
		report.TotalDebits = report.TotalDebits.Add(debit)
		report.TotalCredits = report.TotalCredits.Add(credit)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].AccountNumber < report.Rows[j].AccountNumber
	})
	report.Balanced = report.TotalDebits.Sub(report.TotalCredits).Abs().LessThan(accounting.BalanceTolerance)

	s.LogDebug(ctx, "Trial balance computed",
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("balanced", report.Balanced))
	return report, nil
}

// GetProfitAndLoss summarizes revenue and expense activity over a window.
func (s *ledgerService) GetProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error) {
	activity, err := s.ledgerRepo.SumAccountActivity(ctx, []domain.AccountType{domain.Revenue, domain.Expense}, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account activity")
		return nil, fmt.Errorf("failed to compute profit and loss: %w", err)
	}

	report := &domain.ProfitAndLossReport{From: from, To: to, NetProfit: decimal.Zero}
	for _, a := range activity {
		switch a.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, a)
			report.NetProfit = report.NetProfit.Add(a.NetAmount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, a)
			report.NetProfit = report.NetProfit.Sub(a.NetAmount)
		}
	}

	s.LogDebug(ctx, "Profit and loss computed",
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return report, nil
}
