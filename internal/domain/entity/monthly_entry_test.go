package entity

import (
	"testing"
	"time"
)

func TestMonthKey(t *testing.T) {
	t.Run("pads year and month", func(t *testing.T) {
		if got := MonthKey(2025, time.March); got != "2025-03" {
			t.Errorf("expected 2025-03, got %s", got)
		}
		if got := MonthKey(2025, time.December); got != "2025-12" {
			t.Errorf("expected 2025-12, got %s", got)
		}
	})

	t.Run("MonthKeyFor uses the UTC month", func(t *testing.T) {
		date := time.Date(2025, time.March, 31, 23, 0, 0, 0, time.FixedZone("UTC-3", -3*3600))
		if got := MonthKeyFor(date); got != "2025-04" {
			t.Errorf("expected 2025-04, got %s", got)
		}
	})
}

func TestParseMonthKey(t *testing.T) {
	t.Run("parses a valid key", func(t *testing.T) {
		year, month, err := ParseMonthKey("2025-03")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if year != 2025 || month != time.March {
			t.Errorf("expected 2025 March, got %d %s", year, month)
		}
	})

	t.Run("rejects out-of-range months", func(t *testing.T) {
		if _, _, err := ParseMonthKey("2025-13"); err == nil {
			t.Error("expected error for month 13")
		}
		if _, _, err := ParseMonthKey("2025-00"); err == nil {
			t.Error("expected error for month 00")
		}
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		for _, key := range []string{"", "march", "2025/03"} {
			if _, _, err := ParseMonthKey(key); err == nil {
				t.Errorf("expected error for key %q", key)
			}
		}
	})
}
