// Package aggregate rebuilds monthly aggregates from daily entries.
//
// Monthly entries are never patched incrementally: after any daily
// mutation the owning month is recomputed in full from that month's
// daily entries. At personal-data scale (at most 31 entries per month)
// the full recompute is cheap and cannot drift.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// RebuildMonthly computes the aggregate for (year, month) from the daily
// entries of that month. Progress is the sum of daily progress values;
// segments are merged by source id, summing values and keeping the name
// and color of the first occurrence encountered in entry order. Entries
// outside the month are ignored. Returns nil when the month holds no
// income, signalling that the stored aggregate should be removed.
func RebuildMonthly(year int, month time.Month, entries []*entity.DailyEntry) *entity.MonthlyEntry {
	rebuilt := entity.NewMonthlyEntry(year, month)

	for _, entry := range entries {
		day, err := entry.Day()
		if err != nil || day.Year() != year || day.Month() != month {
			continue
		}
		rebuilt.Progress = rebuilt.Progress.Add(entry.Progress)
		rebuilt.Segments = mergeSegments(rebuilt.Segments, entry.Segments)
	}

	if rebuilt.Progress.IsZero() && len(rebuilt.Segments) == 0 {
		return nil
	}
	return rebuilt
}

// mergeSegments folds src into dst, summing values per source id. The
// first-seen name and color win; later renames reach the aggregate via
// the fan-out update rewriting the daily entries first.
func mergeSegments(dst, src []entity.IncomeSource) []entity.IncomeSource {
	for _, segment := range src {
		if segment.Value.IsZero() {
			continue
		}
		merged := false
		for i := range dst {
			if dst[i].ID == segment.ID {
				dst[i].Value = dst[i].Value.Add(segment.Value)
				merged = true
				break
			}
		}
		if !merged {
			dst = append(dst, segment)
		}
	}
	return dst
}

// SumSegments returns the total of a segment list. Used to check the
// progress/segments invariant on entries arriving from outside.
func SumSegments(segments []entity.IncomeSource) decimal.Decimal {
	total := decimal.Zero
	for _, segment := range segments {
		total = total.Add(segment.Value)
	}
	return total
}
