package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ParseAccountType parses a stored account type string.
// It returns false for values it does not recognize rather than defaulting.
func ParseAccountType(s string) (AccountType, bool) {
	switch AccountType(s) {
	case Asset, Liability, Equity, Revenue, Expense:
		return AccountType(s), true
	}
	return "", false
}

// IsDebitNormal reports whether accounts of this type increase on the debit side.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// AccountSubType is a finer categorization used for report grouping.
type AccountSubType string

const (
	SubTypeCash               AccountSubType = "CASH"
	SubTypeBank               AccountSubType = "BANK"
	SubTypeAccountsReceivable AccountSubType = "ACCOUNTS_RECEIVABLE"
	SubTypeInventory          AccountSubType = "INVENTORY"
	SubTypeFixedAsset         AccountSubType = "FIXED_ASSET"
	SubTypeOtherAsset         AccountSubType = "OTHER_ASSET"

	SubTypeAccountsPayable   AccountSubType = "ACCOUNTS_PAYABLE"
	SubTypeCreditCard        AccountSubType = "CREDIT_CARD"
	SubTypeLongTermLiability AccountSubType = "LONG_TERM_LIABILITY"
	SubTypeOtherLiability    AccountSubType = "OTHER_LIABILITY"

	SubTypeRetainedEarnings     AccountSubType = "RETAINED_EARNINGS"
	SubTypeOpeningBalanceEquity AccountSubType = "OPENING_BALANCE_EQUITY"
	SubTypeOwnerEquity          AccountSubType = "OWNER_EQUITY"

	SubTypeOperatingRevenue AccountSubType = "OPERATING_REVENUE"
	SubTypeOtherRevenue     AccountSubType = "OTHER_REVENUE"

	SubTypeOperatingExpense AccountSubType = "OPERATING_EXPENSE"
	SubTypeCostOfGoodsSold  AccountSubType = "COST_OF_GOODS_SOLD"
	SubTypeOtherExpense     AccountSubType = "OTHER_EXPENSE"
)

// validSubTypes maps each account type to the subtypes it may carry.
var validSubTypes = map[AccountType][]AccountSubType{
	Asset:     {SubTypeCash, SubTypeBank, SubTypeAccountsReceivable, SubTypeInventory, SubTypeFixedAsset, SubTypeOtherAsset},
	Liability: {SubTypeAccountsPayable, SubTypeCreditCard, SubTypeLongTermLiability, SubTypeOtherLiability},
	Equity:    {SubTypeRetainedEarnings, SubTypeOpeningBalanceEquity, SubTypeOwnerEquity},
	Revenue:   {SubTypeOperatingRevenue, SubTypeOtherRevenue},
	Expense:   {SubTypeOperatingExpense, SubTypeCostOfGoodsSold, SubTypeOtherExpense},
}

// ValidSubType reports whether the subtype belongs to the given account type.
func ValidSubType(accountType AccountType, subType AccountSubType) bool {
	for _, st := range validSubTypes[accountType] {
		if st == subType {
			return true
		}
	}
	return false
}

// Account represents one category in the chart of accounts.
type Account struct {
	AccountID          string           `json:"accountID"`
	AccountNumber      string           `json:"accountNumber"` // Unique, sortable (e.g. "1010")
	Name               string           `json:"name"`
	AccountType        AccountType      `json:"accountType"`
	AccountSubType     AccountSubType   `json:"accountSubType"`
	ParentAccountID    string           `json:"parentAccountID"` // Nullable self-reference
	Description        string           `json:"description"`
	IsActive           bool             `json:"isActive"`
	IsSystem           bool             `json:"isSystem"` // System accounts cannot be deleted
	OpeningBalance     decimal.Decimal  `json:"openingBalance"`
	OpeningBalanceDate *time.Time       `json:"openingBalanceDate"`
	CurrencyCode       string           `json:"currencyCode"`
	TaxLine            string           `json:"taxLine"`
	AuditFields
}
