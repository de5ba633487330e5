package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceParams holds query parameters for a balance lookup.
type BalanceParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// BalanceResponse returns a single account balance as of a date.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
}

// LedgerParams holds query parameters for an account ledger window.
type LedgerParams struct {
	Start *time.Time `form:"start" time_format:"2006-01-02"`
	End   *time.Time `form:"end" time_format:"2006-01-02"`
}

// ProfitAndLossParams holds query parameters for a profit and loss window.
type ProfitAndLossParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}
