package source

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	"github.com/bossbitch/backend/internal/integration/persistence"
	"github.com/bossbitch/backend/internal/integration/persistence/model"
)

func newStoreForTest(t *testing.T) adapter.DataStore {
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
	if err := db.AutoMigrate(&model.LocalRecordModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return persistence.NewLocalStore(db)
}

func TestUpdateSourceEverywhere(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	source := entity.IncomeSource{ID: "freelance", Name: "Freelance", Color: "#FF6B6B"}

	seed := func(t *testing.T, store adapter.DataStore) {
		t.Helper()
		days := []time.Time{
			time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		}
		for _, day := range days {
			if _, err := store.AddIncomeToDay(ctx, day, decimal.NewFromInt(100), source); err != nil {
				t.Fatalf("failed to seed entry: %v", err)
			}
		}
		// Outside the trailing twelve months.
		old := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)
		if _, err := store.AddIncomeToDay(ctx, old, decimal.NewFromInt(100), source); err != nil {
			t.Fatalf("failed to seed old entry: %v", err)
		}
		// A day the source never touched.
		other := time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC)
		if _, err := store.AddIncomeToDay(ctx, other, decimal.NewFromInt(50), entity.IncomeSource{ID: "other", Name: "Other"}); err != nil {
			t.Fatalf("failed to seed other entry: %v", err)
		}
	}

	t.Run("rewrites matching days in the trailing window", func(t *testing.T) {
		store := newStoreForTest(t)
		seed(t, store)

		name := "Gigs"
		uc := NewUpdateSourceEverywhereUseCase(store).WithClock(func() time.Time { return today })

		output, err := uc.Execute(ctx, UpdateSourceEverywhereInput{
			ID:    "freelance",
			Patch: entity.IncomeSourcePatch{Name: &name},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.DaysTouched != 2 {
			t.Errorf("expected 2 days touched, got %d", output.DaysTouched)
		}

		entry, err := store.GetDailyEntry(ctx, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Segments[0].Name != "Gigs" {
			t.Errorf("expected renamed segment, got %s", entry.Segments[0].Name)
		}
	})

	t.Run("leaves entries outside the window alone", func(t *testing.T) {
		store := newStoreForTest(t)
		seed(t, store)

		name := "Gigs"
		uc := NewUpdateSourceEverywhereUseCase(store).WithClock(func() time.Time { return today })

		if _, err := uc.Execute(ctx, UpdateSourceEverywhereInput{
			ID:    "freelance",
			Patch: entity.IncomeSourcePatch{Name: &name},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		old, err := store.GetDailyEntry(ctx, time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if old.Segments[0].Name != "Freelance" {
			t.Errorf("expected the old entry untouched, got %s", old.Segments[0].Name)
		}
	})

	t.Run("rebuilds the affected monthly aggregates", func(t *testing.T) {
		store := newStoreForTest(t)
		seed(t, store)

		name, color := "Gigs", "#00FF00"
		uc := NewUpdateSourceEverywhereUseCase(store).WithClock(func() time.Time { return today })

		if _, err := uc.Execute(ctx, UpdateSourceEverywhereInput{
			ID:    "freelance",
			Patch: entity.IncomeSourcePatch{Name: &name, Color: &color},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		month, err := store.GetMonthlyEntry(ctx, 2025, time.March)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if month == nil {
			t.Fatal("expected a monthly aggregate")
		}
		if month.Segments[0].Name != "Gigs" || month.Segments[0].Color != "#00FF00" {
			t.Errorf("expected renamed aggregate segment, got %s %s", month.Segments[0].Name, month.Segments[0].Color)
		}
	})

	t.Run("catalog update failure surfaces to the caller", func(t *testing.T) {
		store := newStoreForTest(t)
		name := "Gigs"
		uc := NewUpdateSourceEverywhereUseCase(store).WithClock(func() time.Time { return today })

		if _, err := uc.Execute(ctx, UpdateSourceEverywhereInput{
			ID:    "never-registered",
			Patch: entity.IncomeSourcePatch{Name: &name},
		}); err == nil {
			t.Error("expected an error for an unknown source")
		}
	})
}
