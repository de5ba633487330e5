package models

import "time"

// FiscalPeriod is the storage representation of a fiscal period.
type FiscalPeriod struct {
	PeriodID     string     `db:"period_id"`
	Name         string     `db:"name"`
	FiscalYear   int        `db:"fiscal_year"`
	PeriodNumber int        `db:"period_number"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	IsClosed     bool       `db:"is_closed"`
	ClosedAt     *time.Time `db:"closed_at"`
	ClosedBy     *string    `db:"closed_by"`
	AuditFields
}
