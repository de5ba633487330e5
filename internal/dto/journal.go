package dto

import (
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest defines one line of a journal entry payload.
type CreateEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	TaxCode     string          `json:"taxCode"`
	CustomerID  string          `json:"customerID"`
	VendorID    string          `json:"vendorID"`
	ClassID     string          `json:"classID"`
	LocationID  string          `json:"locationID"`
}

// CreateEntryRequest defines the payload for creating a journal entry.
type CreateEntryRequest struct {
	EntryDate  time.Time                `json:"entryDate" binding:"required"`
	Memo       string                   `json:"memo"`
	SourceType string                   `json:"sourceType"`
	SourceID   *string                  `json:"sourceID"`
	Adjusting  bool                     `json:"adjusting"`
	AutoPost   bool                     `json:"autoPost"`
	Lines      []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// VoidEntryRequest carries the reason recorded in the voided entry's memo.
type VoidEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseEntryRequest carries the date the reversing entry is booked on.
type ReverseEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
}

// ListEntriesParams holds query parameters for listing journal entries.
type ListEntriesParams struct {
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Status     *string    `form:"status"`
	SourceType *string    `form:"sourceType"`
	AccountID  *string    `form:"accountID"`
	Limit      int        `form:"limit"`
	NextToken  *string    `form:"nextToken"`
}

// EntryLineResponse defines the data returned for one entry line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	TaxCode     string          `json:"taxCode,omitempty"`
	CustomerID  string          `json:"customerID,omitempty"`
	VendorID    string          `json:"vendorID,omitempty"`
	ClassID     string          `json:"classID,omitempty"`
	LocationID  string          `json:"locationID,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID         string              `json:"entryID"`
	EntryNumber     int64               `json:"entryNumber"`
	EntryDate       time.Time           `json:"entryDate"`
	Memo            string              `json:"memo,omitempty"`
	Status          string              `json:"status"`
	SourceType      string              `json:"sourceType"`
	SourceID        *string             `json:"sourceID,omitempty"`
	IsAdjusting     bool                `json:"isAdjusting"`
	IsReversed      bool                `json:"isReversed"`
	ReversesEntryID *string             `json:"reversesEntryID,omitempty"`
	PostedAt        *time.Time          `json:"postedAt,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
	Lines           []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse wraps a page of entries with its continuation token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain line to its response DTO.
func ToEntryLineResponse(l *domain.JournalEntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Description: l.Description,
		Debit:       l.Debit,
		Credit:      l.Credit,
		TaxCode:     l.TaxCode,
		CustomerID:  l.CustomerID,
		VendorID:    l.VendorID,
		ClassID:     l.ClassID,
		LocationID:  l.LocationID,
	}
}

// ToEntryResponse converts a domain entry (and any loaded lines) to its DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		Memo:            e.Memo,
		Status:          string(e.Status),
		SourceType:      string(e.SourceType),
		SourceID:        e.SourceID,
		IsAdjusting:     e.IsAdjusting,
		IsReversed:      e.IsReversed,
		ReversesEntryID: e.ReversesEntryID,
		PostedAt:        e.PostedAt,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	if e.Lines != nil {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
