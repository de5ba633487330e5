package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's normalized debit/credit balance as of a date.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalanceReport proves total debits equal total credits as of a date.
type TrialBalanceReport struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	Balanced     bool              `json:"balanced"`
}

// LedgerLine is one transaction in an account ledger with its running balance.
type LedgerLine struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    int64           `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Memo           string          `json:"memo"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedger is the date-ordered replay of an account over a window.
type AccountLedger struct {
	AccountID      string          `json:"accountID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []LedgerLine    `json:"lines"`
	EndingBalance  decimal.Decimal `json:"endingBalance"`
}

// AccountWithBalance pairs an account with its current balance for chart views.
type AccountWithBalance struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}

// ChartOfAccounts groups accounts by top-level type.
type ChartOfAccounts struct {
	Assets      []AccountWithBalance `json:"assets"`
	Liabilities []AccountWithBalance `json:"liabilities"`
	Equity      []AccountWithBalance `json:"equity"`
	Revenue     []AccountWithBalance `json:"revenue"`
	Expenses    []AccountWithBalance `json:"expenses"`
}

// AccountActivity is an account's net signed movement over a window.
type AccountActivity struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	NetAmount     decimal.Decimal `json:"netAmount"`
}

// ProfitAndLossReport summarizes revenue and expense activity over a window.
type ProfitAndLossReport struct {
	From      time.Time         `json:"from"`
	To        time.Time         `json:"to"`
	Revenue   []AccountActivity `json:"revenue"`
	Expenses  []AccountActivity `json:"expenses"`
	NetProfit decimal.Decimal   `json:"netProfit"`
}

// YearEndCloseResult reports the outcome of closing a fiscal year.
// Closed is false when no revenue or expense account carried a balance, in
// which case no entry is posted.
type YearEndCloseResult struct {
	FiscalYear     int             `json:"fiscalYear"`
	Closed         bool            `json:"closed"`
	ClosingEntryID string          `json:"closingEntryID,omitempty"`
	NetIncome      decimal.Decimal `json:"netIncome"`
	AccountsClosed int             `json:"accountsClosed"`
}
