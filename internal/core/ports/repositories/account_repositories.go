package repositories

import (
	"context"
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
)

// ListAccountsFilter narrows account listings.
type ListAccountsFilter struct {
	AccountType *domain.AccountType
	ActiveOnly  bool
	Limit       int
	NextToken   *string // Opaque token paging on account number
}

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its unique account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a filtered, paginated list of accounts ordered by
	// account number. It returns the accounts and a token for the next page.
	ListAccounts(ctx context.Context, filter ListAccountsFilter) ([]domain.Account, *string, error)

	// ListAccountsByTypes retrieves all accounts of the given types (no paging;
	// used by chart-of-accounts and year-end close which need the full set).
	ListAccountsByTypes(ctx context.Context, types []domain.AccountType) ([]domain.Account, error)

	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate account number surfaces
	// as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// DeleteAccount hard-deletes an account. Callers must have verified the
	// account is neither a system account nor referenced by journal lines.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepository combines all account-related repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
