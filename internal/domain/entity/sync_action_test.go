package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestSyncPaths(t *testing.T) {
	t.Run("daily entry path carries the date key", func(t *testing.T) {
		path := DailyEntryPath("2025-03-10")
		if path != "dailyEntries/2025-03-10" {
			t.Errorf("unexpected path %s", path)
		}

		collection, key := SplitPath(path)
		if collection != PathDailyEntries || key != "2025-03-10" {
			t.Errorf("expected (dailyEntries, 2025-03-10), got (%s, %s)", collection, key)
		}
	})

	t.Run("income source path carries the source id", func(t *testing.T) {
		collection, key := SplitPath(IncomeSourcePath("freelance"))
		if collection != PathIncomeSources || key != "freelance" {
			t.Errorf("expected (incomeSources, freelance), got (%s, %s)", collection, key)
		}
	})

	t.Run("singleton paths have no key", func(t *testing.T) {
		collection, key := SplitPath(PathGoals)
		if collection != PathGoals || key != "" {
			t.Errorf("expected (goals, \"\"), got (%s, %s)", collection, key)
		}
	})
}

func TestNewSyncAction(t *testing.T) {
	action := NewSyncAction(SyncActionUpdate, PathGoals, []byte(`{"dailyGoal":"2500"}`))

	if action.ID == uuid.Nil {
		t.Error("expected a fresh action id")
	}
	if action.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
	if action.Type != SyncActionUpdate || action.Path != PathGoals {
		t.Errorf("unexpected action %s %s", action.Type, action.Path)
	}
}
