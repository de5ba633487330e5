package domain

import "time"

// FiscalPeriod is a named date range within a fiscal year.
// Periods are created in bulk for a year and transition open -> closed once.
type FiscalPeriod struct {
	PeriodID     string     `json:"periodID"`
	Name         string     `json:"name"` // e.g. "Mar 2024"
	FiscalYear   int        `json:"fiscalYear"`
	PeriodNumber int        `json:"periodNumber"` // 1..12 from the fiscal-year start month
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsClosed     bool       `json:"isClosed"`
	ClosedAt     *time.Time `json:"closedAt"`
	ClosedBy     string     `json:"closedBy"`
	AuditFields
}

// Contains reports whether the given date falls inside the period, inclusive
// of both endpoints. Time-of-day is ignored.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate.Truncate(24*time.Hour)) && !d.After(p.EndDate.Truncate(24*time.Hour))
}
