// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MonthKey returns the monthly-entry key for a year and month (YYYY-MM).
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// MonthKeyFor returns the monthly-entry key for the month containing date.
func MonthKeyFor(date time.Time) string {
	d := date.UTC()
	return MonthKey(d.Year(), d.Month())
}

// ParseMonthKey parses a monthly-entry key back into year and month.
func ParseMonthKey(key string) (int, time.Month, error) {
	var year, month int
	if _, err := fmt.Sscanf(key, "%4d-%2d", &year, &month); err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month key %q: month out of range", key)
	}
	return year, time.Month(month), nil
}

// MonthlyEntry is the derived per-month aggregate over that month's daily
// entries. It is never edited directly, only rebuilt after a daily
// mutation. Invariant: Progress equals the sum of the month's daily
// progress values.
type MonthlyEntry struct {
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	MonthKey string          `json:"monthKey"`
	Progress decimal.Decimal `json:"progress"`
	Segments []IncomeSource  `json:"segments"`
}

// NewMonthlyEntry creates an empty aggregate for the given month.
func NewMonthlyEntry(year int, month time.Month) *MonthlyEntry {
	return &MonthlyEntry{
		Year:     year,
		Month:    month,
		MonthKey: MonthKey(year, month),
		Progress: decimal.Zero,
		Segments: []IncomeSource{},
	}
}
