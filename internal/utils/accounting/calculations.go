package accounting

import (
	"fmt"

	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum permitted |sum(debits) - sum(credits)| for a
// journal entry. One cent absorbs consumer-side rounding of split amounts.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// SignedAmount applies the normal-balance convention to a line for the given
// account type. This is the single source of truth for balance direction:
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmount(line domain.JournalEntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// SumSides returns the debit and credit totals across an entry's lines.
func SumSides(lines []domain.JournalEntryLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// ValidateEntryBalance checks the double-entry invariants for a set of lines:
// at least two lines, non-negative amounts, and debit/credit totals equal
// within BalanceTolerance.
func ValidateEntryBalance(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("debit and credit must be non-negative for account %s", line.AccountID)
		}
	}
	debits, credits := SumSides(lines)
	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("entry not balanced: debits sum is %s and credits sum is %s", debits.String(), credits.String())
	}
	return nil
}

// NormalizeBalance splits a signed balance into its normal-side (debit, credit)
// pair for trial balance presentation. A debit-normal account with a positive
// balance lands in the debit column; a negative balance flips sides.
func NormalizeBalance(accountType domain.AccountType, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	if accountType.IsDebitNormal() {
		if balance.IsNegative() {
			return decimal.Zero, balance.Neg()
		}
		return balance, decimal.Zero
	}
	if balance.IsNegative() {
		return balance.Neg(), decimal.Zero
	}
	return decimal.Zero, balance
}
