package services

import (
	"context"

	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/agribooks/ledger-core/internal/dto"
)

// AccountSvcFacade is the chart-of-accounts interface exposed to handlers and
// to the other core services.
type AccountSvcFacade interface {
	// CreateAccount validates and persists a new account. When the request
	// carries a non-zero opening balance and an opening date, a balancing
	// journal entry against the Opening Balance Equity system account is
	// posted through the journal service's normal validated path.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount mutates name/description/active/tax-line only.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount hard-deletes an account that is neither a system account
	// nor referenced by any journal line.
	DeleteAccount(ctx context.Context, accountID string, userID string) error

	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, *string, error)

	// GetChartOfAccounts returns all accounts grouped by top-level type, each
	// annotated with its current balance.
	GetChartOfAccounts(ctx context.Context) (*domain.ChartOfAccounts, error)

	// EnsureDefaultAccounts idempotently seeds the default farm chart.
	EnsureDefaultAccounts(ctx context.Context, userID string) error
}
