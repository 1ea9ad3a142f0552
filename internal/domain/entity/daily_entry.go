// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateKeyLayout is the key format for daily entries (ISO date).
const DateKeyLayout = "2006-01-02"

// DateKey returns the daily-entry key for a date (YYYY-MM-DD, UTC).
func DateKey(date time.Time) string {
	return date.UTC().Format(DateKeyLayout)
}

// ParseDateKey parses a daily-entry key back into a UTC date.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, time.UTC)
}

// DailyEntry records the income earned on a single day, broken into
// per-source segments. Invariant: Progress equals the sum of segment
// values. An entry exists only while it holds income; emptied entries
// are deleted.
type DailyEntry struct {
	Date     string          `json:"date"`
	Progress decimal.Decimal `json:"progress"`
	Segments []IncomeSource  `json:"segments"`
}

// NewDailyEntry creates an empty entry for the given date.
func NewDailyEntry(date time.Time) *DailyEntry {
	return &DailyEntry{
		Date:     DateKey(date),
		Progress: decimal.Zero,
		Segments: []IncomeSource{},
	}
}

// AddIncome adds an amount tagged with the given source. An existing
// segment with the same source id absorbs the amount; otherwise a new
// segment is appended. Returns true when the source was new to this day.
func (e *DailyEntry) AddIncome(amount decimal.Decimal, source IncomeSource) bool {
	for i := range e.Segments {
		if e.Segments[i].ID == source.ID {
			e.Segments[i].Value = e.Segments[i].Value.Add(amount)
			e.Progress = e.Progress.Add(amount)
			return false
		}
	}
	segment := source
	segment.Value = amount
	e.Segments = append(e.Segments, segment)
	e.Progress = e.Progress.Add(amount)
	return true
}

// IsEmpty reports whether the entry holds no income.
func (e *DailyEntry) IsEmpty() bool {
	return len(e.Segments) == 0 || e.Progress.IsZero()
}

// Day returns the entry's date parsed from its key.
func (e *DailyEntry) Day() (time.Time, error) {
	return ParseDateKey(e.Date)
}
