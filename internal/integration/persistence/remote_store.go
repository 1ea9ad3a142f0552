package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/aggregate"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
	"github.com/bossbitch/backend/internal/integration/persistence/model"
)

// remoteStore implements adapter.DataStore on the shared postgres
// database, scoped to one user's rows. Mutations run inside a
// transaction so a daily write and its monthly rebuild land together.
type remoteStore struct {
	db     *gorm.DB
	userID uuid.UUID
}

// NewRemoteStore creates a DataStore over the remote database scoped to
// the given user.
func NewRemoteStore(db *gorm.DB, userID uuid.UUID) adapter.DataStore {
	return &remoteStore{db: db, userID: userID}
}

// GetGoals returns the user's goal configuration, or defaults.
func (s *remoteStore) GetGoals(ctx context.Context) (*entity.Goal, error) {
	return s.getGoals(ctx, s.db)
}

func (s *remoteStore) getGoals(ctx context.Context, tx *gorm.DB) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := tx.WithContext(ctx).Where("user_id = ?", s.userID).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entity.DefaultGoal(), nil
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// UpdateGoals applies a partial goal update and returns the result.
func (s *remoteStore) UpdateGoals(ctx context.Context, patch entity.GoalPatch) (*entity.Goal, error) {
	var goal *entity.Goal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.getGoals(ctx, tx)
		if err != nil {
			return err
		}
		current.Apply(patch)
		if err := s.upsert(ctx, tx, model.GoalFromEntity(s.userID, current)); err != nil {
			return err
		}
		goal = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// GetPreferences returns the user's preferences, or defaults.
func (s *remoteStore) GetPreferences(ctx context.Context) (*entity.Preferences, error) {
	return s.getPreferences(ctx, s.db)
}

func (s *remoteStore) getPreferences(ctx context.Context, tx *gorm.DB) (*entity.Preferences, error) {
	var prefsModel model.PreferencesModel
	result := tx.WithContext(ctx).Where("user_id = ?", s.userID).First(&prefsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entity.DefaultPreferences(), nil
		}
		return nil, result.Error
	}
	return prefsModel.ToEntity(), nil
}

// UpdatePreferences applies a partial preferences update and returns the result.
func (s *remoteStore) UpdatePreferences(ctx context.Context, patch entity.PreferencesPatch) (*entity.Preferences, error) {
	var prefs *entity.Preferences
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.getPreferences(ctx, tx)
		if err != nil {
			return err
		}
		current.Apply(patch)
		if err := s.upsert(ctx, tx, model.PreferencesFromEntity(s.userID, current)); err != nil {
			return err
		}
		prefs = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// GetDailyEntry returns the entry for a date, or nil when the day is empty.
func (s *remoteStore) GetDailyEntry(ctx context.Context, date time.Time) (*entity.DailyEntry, error) {
	return s.getDailyEntry(ctx, s.db, entity.DateKey(date))
}

func (s *remoteStore) getDailyEntry(ctx context.Context, tx *gorm.DB, dateKey string) (*entity.DailyEntry, error) {
	var entryModel model.DailyEntryModel
	result := tx.WithContext(ctx).
		Where("user_id = ? AND date = ?", s.userID, dateKey).
		First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return entryModel.ToEntity()
}

// GetDailyEntries returns the existing entries between start and end
// inclusive, in date order.
func (s *remoteStore) GetDailyEntries(ctx context.Context, start, end time.Time) ([]*entity.DailyEntry, error) {
	return s.getDailyEntries(ctx, s.db, entity.DateKey(start), entity.DateKey(end))
}

func (s *remoteStore) getDailyEntries(ctx context.Context, tx *gorm.DB, startKey, endKey string) ([]*entity.DailyEntry, error) {
	var entryModels []model.DailyEntryModel
	result := tx.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", s.userID, startKey, endKey).
		Order("date ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.DailyEntry, 0, len(entryModels))
	for i := range entryModels {
		entry, err := entryModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AddIncomeToDay adds income to a day's entry, registering new sources
// in the catalog and rebuilding the owning monthly aggregate.
func (s *remoteStore) AddIncomeToDay(ctx context.Context, date time.Time, amount decimal.Decimal, source entity.IncomeSource) (*entity.DailyEntry, error) {
	var entry *entity.DailyEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.getDailyEntry(ctx, tx, entity.DateKey(date))
		if err != nil {
			return err
		}
		if current == nil {
			current = entity.NewDailyEntry(date)
		}

		sourceIsNew := current.AddIncome(amount, source)
		entryModel, err := model.DailyEntryFromEntity(s.userID, current)
		if err != nil {
			return err
		}
		if err := s.upsert(ctx, tx, entryModel); err != nil {
			return err
		}

		if sourceIsNew {
			if err := s.registerSource(ctx, tx, source); err != nil {
				return err
			}
		}

		if err := s.rebuildMonth(ctx, tx, date.UTC().Year(), date.UTC().Month()); err != nil {
			return err
		}
		entry = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateDayEntry replaces a day's entry wholesale. Progress is recomputed
// from the segments. An empty entry deletes the day.
func (s *remoteStore) UpdateDayEntry(ctx context.Context, entry *entity.DailyEntry) (*entity.DailyEntry, error) {
	day, err := entry.Day()
	if err != nil {
		return nil, domainerror.ErrInvalidDate
	}

	entry.Progress = aggregate.SumSegments(entry.Segments)
	deleted := entry.IsEmpty()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if deleted {
			result := tx.WithContext(ctx).
				Delete(&model.DailyEntryModel{}, "user_id = ? AND date = ?", s.userID, entry.Date)
			if result.Error != nil {
				return result.Error
			}
		} else {
			entryModel, err := model.DailyEntryFromEntity(s.userID, entry)
			if err != nil {
				return err
			}
			if err := s.upsert(ctx, tx, entryModel); err != nil {
				return err
			}
		}
		return s.rebuildMonth(ctx, tx, day.Year(), day.Month())
	})
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, nil
	}
	return entry, nil
}

// DeleteDayEntry removes a day's entry and rebuilds the owning monthly
// aggregate. Deleting an absent day is a no-op.
func (s *remoteStore) DeleteDayEntry(ctx context.Context, date time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.WithContext(ctx).
			Delete(&model.DailyEntryModel{}, "user_id = ? AND date = ?", s.userID, entity.DateKey(date))
		if result.Error != nil {
			return result.Error
		}
		return s.rebuildMonth(ctx, tx, date.UTC().Year(), date.UTC().Month())
	})
}

// GetMonthlyEntry returns the aggregate for a month, or nil.
func (s *remoteStore) GetMonthlyEntry(ctx context.Context, year int, month time.Month) (*entity.MonthlyEntry, error) {
	var entryModel model.MonthlyEntryModel
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND month_key = ?", s.userID, entity.MonthKey(year, month)).
		First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return entryModel.ToEntity()
}

// GetMonthlyEntries returns the aggregates between the start and end
// months inclusive, in month order.
func (s *remoteStore) GetMonthlyEntries(ctx context.Context, startYear int, startMonth time.Month, endYear int, endMonth time.Month) ([]*entity.MonthlyEntry, error) {
	var entryModels []model.MonthlyEntryModel
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND month_key >= ? AND month_key <= ?",
			s.userID, entity.MonthKey(startYear, startMonth), entity.MonthKey(endYear, endMonth)).
		Order("month_key ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.MonthlyEntry, 0, len(entryModels))
	for i := range entryModels {
		entry, err := entryModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetIncomeSources returns the source catalog, seeding defaults when the
// user has no rows yet.
func (s *remoteStore) GetIncomeSources(ctx context.Context) ([]entity.IncomeSource, error) {
	sources, err := s.listSources(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if len(sources) > 0 {
		return sources, nil
	}

	defaults := entity.DefaultIncomeSources()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, source := range defaults {
			if err := s.upsert(ctx, tx, model.IncomeSourceFromEntity(s.userID, source)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defaults, nil
}

func (s *remoteStore) listSources(ctx context.Context, tx *gorm.DB) ([]entity.IncomeSource, error) {
	var sourceModels []model.IncomeSourceModel
	result := tx.WithContext(ctx).
		Where("user_id = ?", s.userID).
		Order("created_at ASC").
		Find(&sourceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	sources := make([]entity.IncomeSource, len(sourceModels))
	for i := range sourceModels {
		sources[i] = sourceModels[i].ToEntity()
	}
	return sources, nil
}

// AddIncomeSource adds a source template when its id is not already
// present, and returns the full catalog.
func (s *remoteStore) AddIncomeSource(ctx context.Context, source entity.IncomeSource) ([]entity.IncomeSource, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.registerSource(ctx, tx, source)
	})
	if err != nil {
		return nil, err
	}
	return s.GetIncomeSources(ctx)
}

// UpdateIncomeSource renames or recolors a catalog source and returns
// the full catalog.
func (s *remoteStore) UpdateIncomeSource(ctx context.Context, id string, patch entity.IncomeSourcePatch) ([]entity.IncomeSource, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sourceModel model.IncomeSourceModel
		result := tx.WithContext(ctx).
			Where("user_id = ? AND source_id = ?", s.userID, id).
			First(&sourceModel)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return domainerror.ErrSourceNotFound
			}
			return result.Error
		}

		source := sourceModel.ToEntity()
		source.Apply(patch)
		return s.upsert(ctx, tx, model.IncomeSourceFromEntity(s.userID, source))
	})
	if err != nil {
		return nil, err
	}
	return s.GetIncomeSources(ctx)
}

// registerSource writes the source's zero-value template unless the id
// already has a row. Runs inside the caller's transaction.
func (s *remoteStore) registerSource(ctx context.Context, tx *gorm.DB, source entity.IncomeSource) error {
	var count int64
	result := tx.WithContext(ctx).
		Model(&model.IncomeSourceModel{}).
		Where("user_id = ? AND source_id = ?", s.userID, source.ID).
		Count(&count)
	if result.Error != nil {
		return result.Error
	}
	if count > 0 {
		return nil
	}
	return s.upsert(ctx, tx, model.IncomeSourceFromEntity(s.userID, source.Template()))
}

// rebuildMonth recomputes one month's aggregate from its daily entries.
// Runs inside the caller's transaction.
func (s *remoteStore) rebuildMonth(ctx context.Context, tx *gorm.DB, year int, month time.Month) error {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	entries, err := s.getDailyEntries(ctx, tx, entity.DateKey(first), entity.DateKey(last))
	if err != nil {
		return err
	}

	rebuilt := aggregate.RebuildMonthly(year, month, entries)
	if rebuilt == nil {
		result := tx.WithContext(ctx).
			Delete(&model.MonthlyEntryModel{}, "user_id = ? AND month_key = ?", s.userID, entity.MonthKey(year, month))
		return result.Error
	}

	entryModel, err := model.MonthlyEntryFromEntity(s.userID, rebuilt)
	if err != nil {
		return err
	}
	return s.upsert(ctx, tx, entryModel)
}

// upsert creates or fully replaces a row keyed by its primary key.
func (s *remoteStore) upsert(ctx context.Context, tx *gorm.DB, value any) error {
	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(value)
	return result.Error
}

// ClearAllData removes every row belonging to the user.
func (s *remoteStore) ClearAllData(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.clearAll(ctx, tx)
	})
}

func (s *remoteStore) clearAll(ctx context.Context, tx *gorm.DB) error {
	for _, value := range []any{
		&model.GoalModel{},
		&model.PreferencesModel{},
		&model.IncomeSourceModel{},
		&model.DailyEntryModel{},
		&model.MonthlyEntryModel{},
	} {
		result := tx.WithContext(ctx).Delete(value, "user_id = ?", s.userID)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// ExportData returns a snapshot of the user's full data set.
func (s *remoteStore) ExportData(ctx context.Context) (*entity.Snapshot, error) {
	goals, err := s.GetGoals(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.GetPreferences(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := s.GetIncomeSources(ctx)
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

	var entryModels []model.DailyEntryModel
	result := s.db.WithContext(ctx).Where("user_id = ?", s.userID).Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	for i := range entryModels {
		entry, err := entryModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		data.DailyEntries[entry.Date] = entry
	}

	var monthModels []model.MonthlyEntryModel
	result = s.db.WithContext(ctx).Where("user_id = ?", s.userID).Find(&monthModels)
	if result.Error != nil {
		return nil, result.Error
	}
	for i := range monthModels {
		entry, err := monthModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		data.MonthlyEntries[entry.MonthKey] = entry
	}

	return entity.NewSnapshot(data), nil
}

// ImportData validates the snapshot, clears the user's rows, and
// restores the snapshot's data set in one transaction.
func (s *remoteStore) ImportData(ctx context.Context, snapshot *entity.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.clearAll(ctx, tx); err != nil {
			return err
		}
		if err := s.upsert(ctx, tx, model.GoalFromEntity(s.userID, snapshot.Data.Goals)); err != nil {
			return err
		}
		if err := s.upsert(ctx, tx, model.PreferencesFromEntity(s.userID, snapshot.Data.Preferences)); err != nil {
			return err
		}
		for _, source := range snapshot.Data.IncomeSources {
			if err := s.upsert(ctx, tx, model.IncomeSourceFromEntity(s.userID, source)); err != nil {
				return err
			}
		}
		for _, entry := range snapshot.Data.DailyEntries {
			entryModel, err := model.DailyEntryFromEntity(s.userID, entry)
			if err != nil {
				return err
			}
			if err := s.upsert(ctx, tx, entryModel); err != nil {
				return err
			}
		}
		for _, entry := range snapshot.Data.MonthlyEntries {
			entryModel, err := model.MonthlyEntryFromEntity(s.userID, entry)
			if err != nil {
				return err
			}
			if err := s.upsert(ctx, tx, entryModel); err != nil {
				return err
			}
		}
		return nil
	})
}

var _ adapter.DataStore = (*remoteStore)(nil)
