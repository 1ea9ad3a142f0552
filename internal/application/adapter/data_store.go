// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// DataStore is the storage backend contract shared by the local store,
// the remote store and the unified sync store that wraps them. Reads on
// missing data return documented defaults (or nil for per-day and
// per-month entries) instead of failing; storage errors propagate to the
// caller unmodified, with no retry at this layer.
type DataStore interface {
	// GetGoals returns the user's goal configuration, or the default
	// configuration when none has been saved yet.
	GetGoals(ctx context.Context) (*entity.Goal, error)

	// UpdateGoals applies a partial goal update and returns the result.
	UpdateGoals(ctx context.Context, patch entity.GoalPatch) (*entity.Goal, error)

	// GetPreferences returns the user's preferences, or defaults.
	GetPreferences(ctx context.Context) (*entity.Preferences, error)

	// UpdatePreferences applies a partial preferences update and returns the result.
	UpdatePreferences(ctx context.Context, patch entity.PreferencesPatch) (*entity.Preferences, error)

	// GetDailyEntry returns the entry for a date, or nil when the day is empty.
	GetDailyEntry(ctx context.Context, date time.Time) (*entity.DailyEntry, error)

	// GetDailyEntries returns the existing entries between start and end
	// inclusive, in date order.
	GetDailyEntries(ctx context.Context, start, end time.Time) ([]*entity.DailyEntry, error)

	// AddIncomeToDay loads or creates the day's entry, adds the amount as
	// a segment tagged with source, persists the entry, rebuilds the
	// owning monthly aggregate, and registers the source in the catalog
	// when it is new. Returns the updated entry.
	AddIncomeToDay(ctx context.Context, date time.Time, amount decimal.Decimal, source entity.IncomeSource) (*entity.DailyEntry, error)

	// UpdateDayEntry replaces a day's entry wholesale and rebuilds the
	// owning monthly aggregate. An empty entry deletes the day.
	UpdateDayEntry(ctx context.Context, entry *entity.DailyEntry) (*entity.DailyEntry, error)

	// DeleteDayEntry removes a day's entry and rebuilds the owning
	// monthly aggregate. Deleting an absent day is a no-op.
	DeleteDayEntry(ctx context.Context, date time.Time) error

	// GetMonthlyEntry returns the aggregate for a month, or nil when the
	// month holds no income.
	GetMonthlyEntry(ctx context.Context, year int, month time.Month) (*entity.MonthlyEntry, error)

	// GetMonthlyEntries returns the existing aggregates between the start
	// and end months inclusive, in month order.
	GetMonthlyEntries(ctx context.Context, startYear int, startMonth time.Month, endYear int, endMonth time.Month) ([]*entity.MonthlyEntry, error)

	// GetIncomeSources returns the source catalog, seeding defaults on
	// first read.
	GetIncomeSources(ctx context.Context) ([]entity.IncomeSource, error)

	// AddIncomeSource adds a source template to the catalog when its id
	// is not already present, and returns the full catalog.
	AddIncomeSource(ctx context.Context, source entity.IncomeSource) ([]entity.IncomeSource, error)

	// UpdateIncomeSource renames or recolors a catalog source and returns
	// the full catalog. Historical entries are not touched; the fan-out
	// update is a separate operation layered on top.
	UpdateIncomeSource(ctx context.Context, id string, patch entity.IncomeSourcePatch) ([]entity.IncomeSource, error)

	// ClearAllData resets the store to its default state.
	ClearAllData(ctx context.Context) error

	// ExportData returns a snapshot of the full data set.
	ExportData(ctx context.Context) (*entity.Snapshot, error)

	// ImportData validates the snapshot, clears existing data, and
	// restores the snapshot's data set (clear-then-restore, not merge).
	ImportData(ctx context.Context, snapshot *entity.Snapshot) error
}
