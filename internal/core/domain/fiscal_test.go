package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agribooks/ledger-core/internal/core/domain"
)

func TestFiscalPeriod_Contains(t *testing.T) {
	period := domain.FiscalPeriod{
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "first day", date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "last day", date: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), want: true},
		{name: "last day with time of day", date: time.Date(2026, 3, 31, 18, 45, 0, 0, time.UTC), want: true},
		{name: "mid month", date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), want: true},
		{name: "day before", date: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), want: false},
		{name: "day after", date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.Contains(tt.date))
		})
	}
}
