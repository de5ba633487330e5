package dto

import (
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	AccountNumber   string           `json:"accountNumber" binding:"required,accountnumber"`
	Name            string           `json:"name" binding:"required"`
	AccountType     string           `json:"accountType" binding:"required"`
	AccountSubType  string           `json:"accountSubType" binding:"required"`
	ParentAccountID *string          `json:"parentAccountID"`
	Description     string           `json:"description"`
	CurrencyCode    string           `json:"currencyCode" binding:"required,len=3"`
	TaxLine         string           `json:"taxLine"`
	OpeningBalance  *decimal.Decimal `json:"openingBalance"`
	OpeningDate     *time.Time       `json:"openingDate"`
}

// UpdateAccountRequest defines the mutable account fields. Type and subtype
// are immutable after creation; changing them would invalidate historical reports.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	TaxLine     *string `json:"taxLine"`
}

// ListAccountsParams holds query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType *string `form:"accountType"`
	ActiveOnly  bool    `form:"activeOnly"`
	Limit       int     `form:"limit"`
	NextToken   *string `form:"nextToken"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string          `json:"accountID"`
	AccountNumber      string          `json:"accountNumber"`
	Name               string          `json:"name"`
	AccountType        string          `json:"accountType"`
	AccountSubType     string          `json:"accountSubType"`
	ParentAccountID    string          `json:"parentAccountID,omitempty"`
	Description        string          `json:"description,omitempty"`
	IsActive           bool            `json:"isActive"`
	IsSystem           bool            `json:"isSystem"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceDate *time.Time      `json:"openingBalanceDate,omitempty"`
	CurrencyCode       string          `json:"currencyCode"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ListAccountsResponse wraps a page of accounts with its continuation token.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          a.AccountID,
		AccountNumber:      a.AccountNumber,
		Name:               a.Name,
		AccountType:        string(a.AccountType),
		AccountSubType:     string(a.AccountSubType),
		ParentAccountID:    a.ParentAccountID,
		Description:        a.Description,
		IsActive:           a.IsActive,
		IsSystem:           a.IsSystem,
		OpeningBalance:     a.OpeningBalance,
		OpeningBalanceDate: a.OpeningBalanceDate,
		CurrencyCode:       a.CurrencyCode,
		CreatedAt:          a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
