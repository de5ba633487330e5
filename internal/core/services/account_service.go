package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agribooks/ledger-core/internal/apperrors"
	"github.com/agribooks/ledger-core/internal/core/domain"
	portsrepo "github.com/agribooks/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
	"github.com/agribooks/ledger-core/internal/dto"
	"github.com/agribooks/ledger-core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrSystemAccountProtected = fmt.Errorf("%w: system accounts cannot be deleted", apperrors.ErrConflict)
	ErrAccountInUse           = fmt.Errorf("%w: account is referenced by journal lines", apperrors.ErrConflict)
	ErrInvalidAccountType     = fmt.Errorf("%w: unrecognized account type or subtype", apperrors.ErrValidation)
)

// openingBalanceEquityNumber is the well-known number of the lazily created
// system account that opening-balance entries post against.
const openingBalanceEquityNumber = "3900"

// accountService implements the chart of accounts manager.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	journalSvc  portssvc.JournalSvcFacade
	ledgerSvc   portssvc.LedgerSvcFacade
}

// NewAccountService creates a new chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepository, journalSvc portssvc.JournalSvcFacade, ledgerSvc portssvc.LedgerSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		journalSvc:  journalSvc,
		ledgerSvc:   ledgerSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account. A non-zero opening
// balance with an opening date additionally posts a balancing entry against
// the Opening Balance Equity system account through the journal engine's
// normal validated path, never a shortcut.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	accountType, ok := domain.ParseAccountType(req.AccountType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, req.AccountType)
	}
	subType := domain.AccountSubType(req.AccountSubType)
	if !domain.ValidSubType(accountType, subType) {
		return nil, fmt.Errorf("%w: subtype %q does not belong to type %q", ErrInvalidAccountType, req.AccountSubType, req.AccountType)
	}

	if existing, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, req.AccountNumber)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account number %s: %w", req.AccountNumber, err)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, *req.ParentAccountID)
		}
		if parent.AccountType != accountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, accountType)
		}
		parentID = parent.AccountID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		AccountNumber:   req.AccountNumber,
		Name:            req.Name,
		AccountType:     accountType,
		AccountSubType:  subType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		CurrencyCode:    strings.ToUpper(req.CurrencyCode),
		TaxLine:         req.TaxLine,
		OpeningBalance:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.OpeningBalance != nil {
		account.OpeningBalance = *req.OpeningBalance
		account.OpeningBalanceDate = req.OpeningDate
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_number", req.AccountNumber))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	if req.OpeningBalance != nil && !req.OpeningBalance.IsZero() && req.OpeningDate != nil {
		if err := s.postOpeningBalanceEntry(ctx, &account, creatorUserID); err != nil {
			s.LogError(ctx, err, "Failed to post opening balance entry", slog.String("account_id", account.AccountID))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// postOpeningBalanceEntry books the account's opening amount against the
// Opening Balance Equity system account.
func (s *accountService) postOpeningBalanceEntry(ctx context.Context, account *domain.Account, userID string) error {
	equity, err := s.ensureOpeningBalanceEquity(ctx, userID)
	if err != nil {
		return err
	}

	// The account's line sits on its normal side for a positive opening
	// balance; the equity line mirrors it so the entry balances.
	debit, credit := accounting.NormalizeBalance(account.AccountType, account.OpeningBalance)
	req := dto.CreateEntryRequest{
		EntryDate:  *account.OpeningBalanceDate,
		Memo:       fmt.Sprintf("Opening balance for account %s %s", account.AccountNumber, account.Name),
		SourceType: string(domain.SourceOpeningBalance),
		SourceID:   &account.AccountID,
		AutoPost:   true,
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: account.AccountID, Description: "Opening balance", Debit: debit, Credit: credit},
			{AccountID: equity.AccountID, Description: "Opening balance offset", Debit: credit, Credit: debit},
		},
	}
	if _, err := s.journalSvc.CreateEntry(ctx, req, userID); err != nil {
		return fmt.Errorf("failed to post opening balance entry for account %s: %w", account.AccountID, err)
	}
	return nil
}

// ensureOpeningBalanceEquity lazily creates the Opening Balance Equity
// system account on first use.
func (s *accountService) ensureOpeningBalanceEquity(ctx context.Context, userID string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindAccountByNumber(ctx, openingBalanceEquityNumber)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up opening balance equity account: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		AccountNumber:  openingBalanceEquityNumber,
		Name:           "Opening Balance Equity",
		AccountType:    domain.Equity,
		AccountSubType: domain.SubTypeOpeningBalanceEquity,
		IsActive:       true,
		IsSystem:       true,
		CurrencyCode:   "USD",
		OpeningBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		// A concurrent creator may have won the race; re-read before failing.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindAccountByNumber(ctx, openingBalanceEquityNumber)
		}
		return nil, fmt.Errorf("failed to create opening balance equity account: %w", err)
	}
	s.LogInfo(ctx, "Opening balance equity account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// UpdateAccount mutates name/description/active/tax-line. Type and subtype
// are immutable; changing them would invalidate historical reports.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Name != nil && *req.Name != account.Name {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil && *req.Description != account.Description {
		account.Description = *req.Description
		updated = true
	}
	if req.TaxLine != nil && *req.TaxLine != account.TaxLine {
		account.TaxLine = *req.TaxLine
		updated = true
	}
	activeChanged := req.IsActive != nil && *req.IsActive != account.IsActive
	deactivating := activeChanged && !*req.IsActive
	if activeChanged {
		account.IsActive = *req.IsActive
	}
	if !updated && !activeChanged {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	if deactivating && !updated {
		// A pure deactivation takes the dedicated path so the repository can
		// reject a concurrent double-deactivate.
		if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
		}
	} else if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount hard-deletes an account that is neither a system account nor
// referenced by any journal line.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.IsSystem {
		return ErrSystemAccountProtected
	}

	inUse, err := s.accountRepo.HasJournalLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account usage", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check usage of account %s: %w", accountID, err)
	}
	if inUse {
		return fmt.Errorf("%w: account %s", ErrAccountInUse, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID), slog.String("deleted_by", userID))
	return nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByNumber retrieves an account by its unique number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by number", slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves a filtered page of accounts.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, *string, error) {
	filter := portsrepo.ListAccountsFilter{
		ActiveOnly: params.ActiveOnly,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if params.AccountType != nil {
		accountType, ok := domain.ParseAccountType(*params.AccountType)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, *params.AccountType)
		}
		filter.AccountType = &accountType
	}

	accounts, nextToken, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nextToken, nil
}

// GetChartOfAccounts returns every account grouped by top-level type, each
// annotated with its current balance from the ledger engine.
func (s *accountService) GetChartOfAccounts(ctx context.Context) (*domain.ChartOfAccounts, error) {
	accounts, err := s.accountRepo.ListAccountsByTypes(ctx, []domain.AccountType{
		domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for chart")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	chart := &domain.ChartOfAccounts{}
	for _, account := range accounts {
		balance, err := s.ledgerSvc.GetAccountBalance(ctx, account.AccountID, nil)
		if err != nil {
			s.LogError(ctx, err, "Failed to compute balance for chart", slog.String("account_id", account.AccountID))
			return nil, fmt.Errorf("failed to compute balance for account %s: %w", account.AccountID, err)
		}
		entry := domain.AccountWithBalance{Account: account, Balance: balance}
		switch account.AccountType {
		case domain.Asset:
			chart.Assets = append(chart.Assets, entry)
		case domain.Liability:
			chart.Liabilities = append(chart.Liabilities, entry)
		case domain.Equity:
			chart.Equity = append(chart.Equity, entry)
		case domain.Revenue:
			chart.Revenue = append(chart.Revenue, entry)
		case domain.Expense:
			chart.Expenses = append(chart.Expenses, entry)
		}
	}
	return chart, nil
}

// defaultAccounts is the minimal farm chart seeded on first run.
var defaultAccounts = []struct {
	number  string
	name    string
	accType domain.AccountType
	subType domain.AccountSubType
	system  bool
}{
	{"1010", "Operating Checking", domain.Asset, domain.SubTypeBank, false},
	{"1200", "Accounts Receivable", domain.Asset, domain.SubTypeAccountsReceivable, true},
	{"2000", "Accounts Payable", domain.Liability, domain.SubTypeAccountsPayable, true},
	{openingBalanceEquityNumber, "Opening Balance Equity", domain.Equity, domain.SubTypeOpeningBalanceEquity, true},
	{"3000", "Retained Earnings", domain.Equity, domain.SubTypeRetainedEarnings, true},
	{"4000", "Crop Sales", domain.Revenue, domain.SubTypeOperatingRevenue, false},
	{"6000", "Operating Expenses", domain.Expense, domain.SubTypeOperatingExpense, false},
}

// EnsureDefaultAccounts idempotently seeds the default farm chart; accounts
// whose numbers already exist are left untouched.
func (s *accountService) EnsureDefaultAccounts(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	for _, seed := range defaultAccounts {
		_, err := s.accountRepo.FindAccountByNumber(ctx, seed.number)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check default account %s: %w", seed.number, err)
		}

		account := domain.Account{
			AccountID:      uuid.NewString(),
			AccountNumber:  seed.number,
			Name:           seed.name,
			AccountType:    seed.accType,
			AccountSubType: seed.subType,
			IsActive:       true,
			IsSystem:       seed.system,
			CurrencyCode:   "USD",
			OpeningBalance: decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed default account %s: %w", seed.number, err)
		}
		s.LogInfo(ctx, "Default account seeded", slog.String("account_number", seed.number), slog.String("name", seed.name))
	}
	return nil
}
