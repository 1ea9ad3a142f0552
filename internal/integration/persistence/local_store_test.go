package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/persistence/model"
)

// newTestDB opens a fresh in-memory sqlite database and migrates the
// given models.
func newTestDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	conn.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return db
}

func newLocalStoreForTest(t *testing.T) *localStore {
	t.Helper()
	db := newTestDB(t, &model.LocalRecordModel{})
	return &localStore{db: db}
}

func TestLocalStore_Defaults(t *testing.T) {
	store := newLocalStoreForTest(t)
	ctx := context.Background()

	t.Run("goals default when never written", func(t *testing.T) {
		goals, err := store.GetGoals(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := entity.DefaultGoal()
		if !goals.DailyGoal.Equal(expected.DailyGoal) {
			t.Errorf("expected default daily goal %s, got %s", expected.DailyGoal, goals.DailyGoal)
		}
	})

	t.Run("missing day returns nil without error", func(t *testing.T) {
		entry, err := store.GetDailyEntry(ctx, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry != nil {
			t.Errorf("expected nil entry, got %+v", entry)
		}
	})

	t.Run("source catalog seeds defaults on first read", func(t *testing.T) {
		sources, err := store.GetIncomeSources(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sources) != len(entity.DefaultIncomeSources()) {
			t.Errorf("expected %d seeded sources, got %d", len(entity.DefaultIncomeSources()), len(sources))
		}
	})

	t.Run("concurrent first reads seed the catalog exactly once", func(t *testing.T) {
		fresh := newLocalStoreForTest(t)

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sources, err := fresh.GetIncomeSources(ctx)
				if err != nil {
					errs <- err
					return
				}
				if len(sources) != len(entity.DefaultIncomeSources()) {
					errs <- fmt.Errorf("got %d sources", len(sources))
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Errorf("concurrent read failed: %v", err)
		}

		sources, err := fresh.GetIncomeSources(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sources) != len(entity.DefaultIncomeSources()) {
			t.Errorf("expected the catalog seeded once, got %d sources", len(sources))
		}
	})
}

func TestLocalStore_GoalsAndPreferences(t *testing.T) {
	store := newLocalStoreForTest(t)
	ctx := context.Background()

	t.Run("goal patch persists", func(t *testing.T) {
		daily := decimal.NewFromInt(2500)
		updated, err := store.UpdateGoals(ctx, entity.GoalPatch{DailyGoal: &daily})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.DailyGoal.Equal(daily) {
			t.Errorf("expected daily goal 2500, got %s", updated.DailyGoal)
		}

		reloaded, err := store.GetGoals(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reloaded.DailyGoal.Equal(daily) {
			t.Errorf("expected persisted daily goal 2500, got %s", reloaded.DailyGoal)
		}
	})

	t.Run("preference patch persists and leaves other fields alone", func(t *testing.T) {
		dark := true
		updated, err := store.UpdatePreferences(ctx, entity.PreferencesPatch{IsDarkMode: &dark})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.IsDarkMode {
			t.Error("expected dark mode on")
		}
		if updated.Colors != entity.DefaultPreferences().Colors {
			t.Error("expected colors to keep their defaults")
		}
	})
}

func TestLocalStore_DailyEntries(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	source := entity.IncomeSource{ID: "consulting", Name: "Consulting", Color: "#AA00FF"}

	t.Run("adding income persists the entry and the monthly aggregate", func(t *testing.T) {
		store := newLocalStoreForTest(t)

		entry, err := store.AddIncomeToDay(ctx, day, decimal.NewFromInt(150), source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !entry.Progress.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected progress 150, got %s", entry.Progress)
		}

		month, err := store.GetMonthlyEntry(ctx, 2025, time.March)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if month == nil {
			t.Fatal("expected a monthly aggregate")
		}
		if !month.Progress.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected monthly progress 150, got %s", month.Progress)
		}
	})

	t.Run("a new source is registered in the catalog", func(t *testing.T) {
		store := newLocalStoreForTest(t)

		if _, err := store.AddIncomeToDay(ctx, day, decimal.NewFromInt(10), source); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sources, err := store.GetIncomeSources(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found := false
		for _, s := range sources {
			if s.ID == source.ID {
				found = true
				if !s.Value.IsZero() {
					t.Error("expected a zero-value catalog template")
				}
			}
		}
		if !found {
			t.Error("expected the new source in the catalog")
		}
	})

	t.Run("emptying a day deletes it and its month", func(t *testing.T) {
		store := newLocalStoreForTest(t)

		if _, err := store.AddIncomeToDay(ctx, day, decimal.NewFromInt(150), source); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		empty := &entity.DailyEntry{Date: entity.DateKey(day), Segments: []entity.IncomeSource{}}
		result, err := store.UpdateDayEntry(ctx, empty)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != nil {
			t.Errorf("expected nil for a deleted day, got %+v", result)
		}

		if entry, _ := store.GetDailyEntry(ctx, day); entry != nil {
			t.Error("expected the day to be gone")
		}
		if month, _ := store.GetMonthlyEntry(ctx, 2025, time.March); month != nil {
			t.Error("expected the monthly aggregate to be gone")
		}
	})

	t.Run("update recomputes progress from segments", func(t *testing.T) {
		store := newLocalStoreForTest(t)

		entry := &entity.DailyEntry{
			Date:     entity.DateKey(day),
			Progress: decimal.NewFromInt(999), // stale, must be recomputed
			Segments: []entity.IncomeSource{
				{ID: "consulting", Name: "Consulting", Value: decimal.NewFromInt(40)},
				{ID: "tips", Name: "Tips", Value: decimal.NewFromInt(5)},
			},
		}

		updated, err := store.UpdateDayEntry(ctx, entry)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.Progress.Equal(decimal.NewFromInt(45)) {
			t.Errorf("expected recomputed progress 45, got %s", updated.Progress)
		}
	})

	t.Run("update rejects an invalid date key", func(t *testing.T) {
		store := newLocalStoreForTest(t)

		_, err := store.UpdateDayEntry(ctx, &entity.DailyEntry{Date: "not-a-date"})
		if err != domainerror.ErrInvalidDate {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("delete rebuilds the month from the remaining days", func(t *testing.T) {
		store := newLocalStoreForTest(t)
		otherDay := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)

		if _, err := store.AddIncomeToDay(ctx, day, decimal.NewFromInt(100), source); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := store.AddIncomeToDay(ctx, otherDay, decimal.NewFromInt(50), source); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := store.DeleteDayEntry(ctx, day); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		month, err := store.GetMonthlyEntry(ctx, 2025, time.March)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if month == nil {
			t.Fatal("expected the month to survive with one day left")
		}
		if !month.Progress.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected monthly progress 50, got %s", month.Progress)
		}
	})

	t.Run("range read returns entries in date order", func(t *testing.T) {
		store := newLocalStoreForTest(t)

		for _, d := range []int{15, 10, 20} {
			date := time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
			if _, err := store.AddIncomeToDay(ctx, date, decimal.NewFromInt(10), source); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		entries, err := store.GetDailyEntries(ctx,
			time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		for i := 1; i < len(entries); i++ {
			if entries[i-1].Date >= entries[i].Date {
				t.Errorf("entries out of order: %s before %s", entries[i-1].Date, entries[i].Date)
			}
		}
	})
}

func TestLocalStore_Sources(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate ids are not added twice", func(t *testing.T) {
		store := newLocalStoreForTest(t)
		source := entity.IncomeSource{ID: "consulting", Name: "Consulting"}

		first, err := store.AddIncomeSource(ctx, source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := store.AddIncomeSource(ctx, source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second) != len(first) {
			t.Errorf("expected catalog size to stay %d, got %d", len(first), len(second))
		}
	})

	t.Run("patching an unknown source fails", func(t *testing.T) {
		store := newLocalStoreForTest(t)
		name := "Renamed"

		_, err := store.UpdateIncomeSource(ctx, "missing", entity.IncomeSourcePatch{Name: &name})
		if err != domainerror.ErrSourceNotFound {
			t.Errorf("expected ErrSourceNotFound, got %v", err)
		}
	})

	t.Run("patch updates name and color", func(t *testing.T) {
		store := newLocalStoreForTest(t)
		name, color := "Gigs", "#123456"

		sources, err := store.UpdateIncomeSource(ctx, "freelance", entity.IncomeSourcePatch{Name: &name, Color: &color})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, s := range sources {
			if s.ID == "freelance" && (s.Name != "Gigs" || s.Color != "#123456") {
				t.Errorf("patch not applied: %+v", s)
			}
		}
	})
}

func TestLocalStore_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newLocalStoreForTest(t)
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	source := entity.IncomeSource{ID: "consulting", Name: "Consulting"}

	if _, err := store.AddIncomeToDay(ctx, day, decimal.NewFromInt(150), source); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := store.ExportData(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := snapshot.Validate(); err != nil {
		t.Fatalf("exported snapshot does not validate: %v", err)
	}

	if err := store.ClearAllData(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry, _ := store.GetDailyEntry(ctx, day); entry != nil {
		t.Fatal("expected cleared store to have no entries")
	}

	if err := store.ImportData(ctx, snapshot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := store.GetDailyEntry(ctx, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry == nil {
		t.Fatal("expected the imported entry back")
	}
	if !entry.Progress.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected progress 150 after import, got %s", entry.Progress)
	}
}
