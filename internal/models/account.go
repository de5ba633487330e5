package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage boundary.
type AccountType string

// AccountSubType mirrors domain.AccountSubType at the storage boundary.
type AccountSubType string

// Account is the storage representation of a ledger account.
// Nullable columns use pointer types; defaults are resolved in mapping, not
// scattered through business logic.
type Account struct {
	AccountID          string          `db:"account_id"`
	AccountNumber      string          `db:"account_number"`
	Name               string          `db:"name"`
	AccountType        AccountType     `db:"account_type"`
	AccountSubType     AccountSubType  `db:"account_sub_type"`
	ParentAccountID    *string         `db:"parent_account_id"`
	Description        string          `db:"description"`
	IsActive           bool            `db:"is_active"`
	IsSystem           bool            `db:"is_system"`
	OpeningBalance     decimal.Decimal `db:"opening_balance"`
	OpeningBalanceDate *time.Time      `db:"opening_balance_date"`
	CurrencyCode       string          `db:"currency_code"`
	TaxLine            *string         `db:"tax_line"`
	AuditFields
}
