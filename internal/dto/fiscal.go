package dto

import (
	"time"

	"github.com/agribooks/ledger-core/internal/core/domain"
)

// CreateFiscalYearRequest defines the payload for generating a year's periods.
type CreateFiscalYearRequest struct {
	Year int `json:"year" binding:"required,min=1900,max=2200"`
}

// CloseFiscalYearRequest defines the payload for the year-end close.
type CloseFiscalYearRequest struct {
	Year                      int    `json:"year" binding:"required,min=1900,max=2200"`
	RetainedEarningsAccountID string `json:"retainedEarningsAccountID" binding:"required"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID     string     `json:"periodID"`
	Name         string     `json:"name"`
	FiscalYear   int        `json:"fiscalYear"`
	PeriodNumber int        `json:"periodNumber"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsClosed     bool       `json:"isClosed"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ClosedBy     string     `json:"closedBy,omitempty"`
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to its response DTO.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:     p.PeriodID,
		Name:         p.Name,
		FiscalYear:   p.FiscalYear,
		PeriodNumber: p.PeriodNumber,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		IsClosed:     p.IsClosed,
		ClosedAt:     p.ClosedAt,
		ClosedBy:     p.ClosedBy,
	}
}

// ToFiscalPeriodResponses converts a slice of domain periods.
func ToFiscalPeriodResponses(periods []domain.FiscalPeriod) []FiscalPeriodResponse {
	responses := make([]FiscalPeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToFiscalPeriodResponse(&periods[i])
	}
	return responses
}
