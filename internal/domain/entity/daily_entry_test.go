package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateKey(t *testing.T) {
	t.Run("formats as ISO date in UTC", func(t *testing.T) {
		date := time.Date(2025, time.March, 9, 23, 30, 0, 0, time.FixedZone("UTC-3", -3*3600))
		if got := DateKey(date); got != "2025-03-10" {
			t.Errorf("expected key 2025-03-10, got %s", got)
		}
	})

	t.Run("round trips through ParseDateKey", func(t *testing.T) {
		parsed, err := ParseDateKey("2025-03-10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if DateKey(parsed) != "2025-03-10" {
			t.Errorf("round trip changed the key: got %s", DateKey(parsed))
		}
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		for _, key := range []string{"2025-3-10", "10-03-2025", "2025-03", "not-a-date"} {
			if _, err := ParseDateKey(key); err == nil {
				t.Errorf("expected error for key %q", key)
			}
		}
	})
}

func TestDailyEntry_AddIncome(t *testing.T) {
	source := IncomeSource{ID: "freelance", Name: "Freelance", Color: "#FF5733"}

	t.Run("new source appends a segment", func(t *testing.T) {
		entry := NewDailyEntry(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

		created := entry.AddIncome(decimal.NewFromInt(100), source)

		if !created {
			t.Error("expected first income for a source to report a new segment")
		}
		if len(entry.Segments) != 1 {
			t.Fatalf("expected 1 segment, got %d", len(entry.Segments))
		}
		if !entry.Segments[0].Value.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected segment value 100, got %s", entry.Segments[0].Value)
		}
		if !entry.Progress.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected progress 100, got %s", entry.Progress)
		}
	})

	t.Run("existing source absorbs the amount", func(t *testing.T) {
		entry := NewDailyEntry(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
		entry.AddIncome(decimal.NewFromInt(100), source)

		created := entry.AddIncome(decimal.NewFromInt(50), source)

		if created {
			t.Error("expected repeated source to merge into the existing segment")
		}
		if len(entry.Segments) != 1 {
			t.Fatalf("expected 1 segment, got %d", len(entry.Segments))
		}
		if !entry.Segments[0].Value.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected segment value 150, got %s", entry.Segments[0].Value)
		}
		if !entry.Progress.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected progress 150, got %s", entry.Progress)
		}
	})

	t.Run("progress tracks the sum across sources", func(t *testing.T) {
		entry := NewDailyEntry(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
		entry.AddIncome(decimal.NewFromInt(100), source)
		entry.AddIncome(decimal.NewFromInt(25), IncomeSource{ID: "salary", Name: "Salary"})

		if len(entry.Segments) != 2 {
			t.Fatalf("expected 2 segments, got %d", len(entry.Segments))
		}
		if !entry.Progress.Equal(decimal.NewFromInt(125)) {
			t.Errorf("expected progress 125, got %s", entry.Progress)
		}
	})
}

func TestDailyEntry_IsEmpty(t *testing.T) {
	entry := NewDailyEntry(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	if !entry.IsEmpty() {
		t.Error("expected a fresh entry to be empty")
	}

	entry.AddIncome(decimal.NewFromInt(10), IncomeSource{ID: "tips", Name: "Tips"})
	if entry.IsEmpty() {
		t.Error("expected an entry with income to be non-empty")
	}
}
