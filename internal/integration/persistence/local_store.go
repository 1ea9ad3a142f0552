// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/aggregate"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/persistence/model"
)

// Local store key namespace. One logical record per key, JSON-encoded.
const (
	keyPrefix        = "bossbitch-"
	keyGoals         = keyPrefix + "goals"
	keyPreferences   = keyPrefix + "preferences"
	keyIncomeSources = keyPrefix + "income-sources"
	keyDailyPrefix   = keyPrefix + "daily-"
	keyMonthlyPrefix = keyPrefix + "monthly-"
)

// localStore implements adapter.DataStore on the embedded sqlite
// key-value table. It is the storage that keeps working with no network
// and no session, so reads never fail on missing data; they return
// defaults (or nil for per-day and per-month entries).
type localStore struct {
	db *gorm.DB

	// mu serializes read-modify-write cycles. sqlite allows a single
	// writer anyway, so a process-wide mutex costs nothing here.
	mu sync.Mutex
}

// NewLocalStore creates a DataStore backed by the local sqlite database.
func NewLocalStore(db *gorm.DB) adapter.DataStore {
	return &localStore{db: db}
}

// get loads and decodes one record. Returns false when the key is absent.
func (s *localStore) get(ctx context.Context, key string, out any) (bool, error) {
	var record model.LocalRecordModel
	result := s.db.WithContext(ctx).Where("key = ?", key).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	if err := json.Unmarshal(record.Value, out); err != nil {
		return false, err
	}
	return true, nil
}

// put encodes and upserts one record.
func (s *localStore) put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	record := model.LocalRecordModel{Key: key, Value: raw, UpdatedAt: time.Now().UTC()}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, UpdateAll: true}).
		Create(&record)
	return result.Error
}

// remove deletes one record. Deleting an absent key is a no-op.
func (s *localStore) remove(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Delete(&model.LocalRecordModel{}, "key = ?", key)
	return result.Error
}

// GetGoals returns the stored goal configuration, or defaults.
func (s *localStore) GetGoals(ctx context.Context) (*entity.Goal, error) {
	var goal entity.Goal
	found, err := s.get(ctx, keyGoals, &goal)
	if err != nil {
		return nil, err
	}
	if !found {
		return entity.DefaultGoal(), nil
	}
	return &goal, nil
}

// UpdateGoals applies a partial goal update and returns the result.
func (s *localStore) UpdateGoals(ctx context.Context, patch entity.GoalPatch) (*entity.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, err := s.GetGoals(ctx)
	if err != nil {
		return nil, err
	}
	goal.Apply(patch)
	if err := s.put(ctx, keyGoals, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// GetPreferences returns the stored preferences, or defaults.
func (s *localStore) GetPreferences(ctx context.Context) (*entity.Preferences, error) {
	var prefs entity.Preferences
	found, err := s.get(ctx, keyPreferences, &prefs)
	if err != nil {
		return nil, err
	}
	if !found {
		return entity.DefaultPreferences(), nil
	}
	return &prefs, nil
}

// UpdatePreferences applies a partial preferences update and returns the result.
func (s *localStore) UpdatePreferences(ctx context.Context, patch entity.PreferencesPatch) (*entity.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.GetPreferences(ctx)
	if err != nil {
		return nil, err
	}
	prefs.Apply(patch)
	if err := s.put(ctx, keyPreferences, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// GetDailyEntry returns the entry for a date, or nil when the day is empty.
func (s *localStore) GetDailyEntry(ctx context.Context, date time.Time) (*entity.DailyEntry, error) {
	var entry entity.DailyEntry
	found, err := s.get(ctx, keyDailyPrefix+entity.DateKey(date), &entry)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &entry, nil
}

// GetDailyEntries returns the existing entries between start and end
// inclusive, in date order. Date keys sort lexicographically in date
// order, so a key range scan is enough.
func (s *localStore) GetDailyEntries(ctx context.Context, start, end time.Time) ([]*entity.DailyEntry, error) {
	var records []model.LocalRecordModel
	result := s.db.WithContext(ctx).
		Where("key >= ? AND key <= ?", keyDailyPrefix+entity.DateKey(start), keyDailyPrefix+entity.DateKey(end)).
		Order("key ASC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.DailyEntry, 0, len(records))
	for _, record := range records {
		var entry entity.DailyEntry
		if err := json.Unmarshal(record.Value, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

// AddIncomeToDay adds income to a day's entry, registering new sources
// in the catalog and rebuilding the owning monthly aggregate.
func (s *localStore) AddIncomeToDay(ctx context.Context, date time.Time, amount decimal.Decimal, source entity.IncomeSource) (*entity.DailyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.GetDailyEntry(ctx, date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = entity.NewDailyEntry(date)
	}

	sourceIsNew := entry.AddIncome(amount, source)
	if err := s.put(ctx, keyDailyPrefix+entry.Date, entry); err != nil {
		return nil, err
	}

	if sourceIsNew {
		if err := s.registerSource(ctx, source); err != nil {
			return nil, err
		}
	}

	if err := s.rebuildMonth(ctx, date.UTC().Year(), date.UTC().Month()); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateDayEntry replaces a day's entry wholesale. Progress is
// recomputed from the segments so the stored entry honors the sum
// invariant. An empty entry deletes the day.
func (s *localStore) UpdateDayEntry(ctx context.Context, entry *entity.DailyEntry) (*entity.DailyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, err := entry.Day()
	if err != nil {
		return nil, domainerror.ErrInvalidDate
	}

	entry.Progress = aggregate.SumSegments(entry.Segments)
	if entry.IsEmpty() {
		if err := s.remove(ctx, keyDailyPrefix+entry.Date); err != nil {
			return nil, err
		}
		if err := s.rebuildMonth(ctx, day.Year(), day.Month()); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.put(ctx, keyDailyPrefix+entry.Date, entry); err != nil {
		return nil, err
	}
	if err := s.rebuildMonth(ctx, day.Year(), day.Month()); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteDayEntry removes a day's entry and rebuilds the owning monthly
// aggregate. Deleting an absent day is a no-op.
func (s *localStore) DeleteDayEntry(ctx context.Context, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.remove(ctx, keyDailyPrefix+entity.DateKey(date)); err != nil {
		return err
	}
	return s.rebuildMonth(ctx, date.UTC().Year(), date.UTC().Month())
}

// GetMonthlyEntry returns the aggregate for a month, or nil.
func (s *localStore) GetMonthlyEntry(ctx context.Context, year int, month time.Month) (*entity.MonthlyEntry, error) {
	var entry entity.MonthlyEntry
	found, err := s.get(ctx, keyMonthlyPrefix+entity.MonthKey(year, month), &entry)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &entry, nil
}

// GetMonthlyEntries returns the aggregates between the start and end
// months inclusive, in month order.
func (s *localStore) GetMonthlyEntries(ctx context.Context, startYear int, startMonth time.Month, endYear int, endMonth time.Month) ([]*entity.MonthlyEntry, error) {
	var records []model.LocalRecordModel
	result := s.db.WithContext(ctx).
		Where("key >= ? AND key <= ?", keyMonthlyPrefix+entity.MonthKey(startYear, startMonth), keyMonthlyPrefix+entity.MonthKey(endYear, endMonth)).
		Order("key ASC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.MonthlyEntry, 0, len(records))
	for _, record := range records {
		var entry entity.MonthlyEntry
		if err := json.Unmarshal(record.Value, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

// GetIncomeSources returns the source catalog, seeding defaults when the
// catalog has never been written.
func (s *localStore) GetIncomeSources(ctx context.Context) ([]entity.IncomeSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getIncomeSources(ctx)
}

// getIncomeSources seeds and reads the catalog. Callers hold s.mu.
func (s *localStore) getIncomeSources(ctx context.Context) ([]entity.IncomeSource, error) {
	var sources []entity.IncomeSource
	found, err := s.get(ctx, keyIncomeSources, &sources)
	if err != nil {
		return nil, err
	}
	if !found {
		sources = entity.DefaultIncomeSources()
		if err := s.put(ctx, keyIncomeSources, sources); err != nil {
			return nil, err
		}
	}
	return sources, nil
}

// AddIncomeSource adds a source template when its id is not already
// present, and returns the full catalog.
func (s *localStore) AddIncomeSource(ctx context.Context, source entity.IncomeSource) ([]entity.IncomeSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registerSource(ctx, source); err != nil {
		return nil, err
	}
	return s.getIncomeSources(ctx)
}

// UpdateIncomeSource renames or recolors a catalog source and returns
// the full catalog.
func (s *localStore) UpdateIncomeSource(ctx context.Context, id string, patch entity.IncomeSourcePatch) ([]entity.IncomeSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources, err := s.getIncomeSources(ctx)
	if err != nil {
		return nil, err
	}

	updated := false
	for i := range sources {
		if sources[i].ID == id {
			sources[i].Apply(patch)
			updated = true
			break
		}
	}
	if !updated {
		return nil, domainerror.ErrSourceNotFound
	}

	if err := s.put(ctx, keyIncomeSources, sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// registerSource appends the source's zero-value template to the catalog
// unless the id already exists. Callers hold s.mu.
func (s *localStore) registerSource(ctx context.Context, source entity.IncomeSource) error {
	var sources []entity.IncomeSource
	found, err := s.get(ctx, keyIncomeSources, &sources)
	if err != nil {
		return err
	}
	if !found {
		sources = entity.DefaultIncomeSources()
	}
	for _, existing := range sources {
		if existing.ID == source.ID {
			return nil
		}
	}
	sources = append(sources, source.Template())
	return s.put(ctx, keyIncomeSources, sources)
}

// rebuildMonth recomputes one month's aggregate from its daily entries.
// Callers hold s.mu.
func (s *localStore) rebuildMonth(ctx context.Context, year int, month time.Month) error {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	entries, err := s.GetDailyEntries(ctx, first, last)
	if err != nil {
		return err
	}

	rebuilt := aggregate.RebuildMonthly(year, month, entries)
	monthKey := keyMonthlyPrefix + entity.MonthKey(year, month)
	if rebuilt == nil {
		return s.remove(ctx, monthKey)
	}
	return s.put(ctx, monthKey, rebuilt)
}

// ClearAllData removes every record in the namespace, resetting the
// store to defaults.
func (s *localStore) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clearAll(ctx)
}

// clearAll deletes every record in the namespace. Callers hold s.mu.
func (s *localStore) clearAll(ctx context.Context) error {
	result := s.db.WithContext(ctx).Delete(&model.LocalRecordModel{}, "key LIKE ?", keyPrefix+"%")
	return result.Error
}

// ExportData returns a snapshot of the full data set.
func (s *localStore) ExportData(ctx context.Context) (*entity.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.GetGoals(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.GetPreferences(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := s.getIncomeSources(ctx)
	if err != nil {
		return nil, err
	}

	data := entity.SnapshotData{
		Goals:          goals,
		Preferences:    prefs,
		IncomeSources:  sources,
		DailyEntries:   map[string]*entity.DailyEntry{},
		MonthlyEntries: map[string]*entity.MonthlyEntry{},
	}

	var records []model.LocalRecordModel
	result := s.db.WithContext(ctx).Where("key LIKE ?", keyDailyPrefix+"%").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, record := range records {
		var entry entity.DailyEntry
		if err := json.Unmarshal(record.Value, &entry); err != nil {
			return nil, err
		}
		data.DailyEntries[entry.Date] = &entry
	}

	records = nil
	result = s.db.WithContext(ctx).Where("key LIKE ?", keyMonthlyPrefix+"%").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, record := range records {
		var entry entity.MonthlyEntry
		if err := json.Unmarshal(record.Value, &entry); err != nil {
			return nil, err
		}
		data.MonthlyEntries[entry.MonthKey] = &entry
	}

	return entity.NewSnapshot(data), nil
}

// ImportData validates the snapshot, clears existing data, and restores
// the snapshot's data set.
func (s *localStore) ImportData(ctx context.Context, snapshot *entity.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clearAll(ctx); err != nil {
		return err
	}
	if err := s.put(ctx, keyGoals, snapshot.Data.Goals); err != nil {
		return err
	}
	if err := s.put(ctx, keyPreferences, snapshot.Data.Preferences); err != nil {
		return err
	}
	if err := s.put(ctx, keyIncomeSources, snapshot.Data.IncomeSources); err != nil {
		return err
	}
	for key, entry := range snapshot.Data.DailyEntries {
		if err := s.put(ctx, keyDailyPrefix+key, entry); err != nil {
			return err
		}
	}
	for key, entry := range snapshot.Data.MonthlyEntries {
		if err := s.put(ctx, keyMonthlyPrefix+key, entry); err != nil {
			return err
		}
	}
	return nil
}
