package syncstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// fakeDataStore is an in-memory DataStore recording which operations
// ran. Setting failWith makes every call return that error.
type fakeDataStore struct {
	mu       sync.Mutex
	failWith error

	goals   *entity.Goal
	prefs   *entity.Preferences
	entries map[string]*entity.DailyEntry
	sources []entity.IncomeSource
	calls   []string
}

func newFakeDataStore() *fakeDataStore {
	return &fakeDataStore{entries: make(map[string]*entity.DailyEntry)}
}

func (f *fakeDataStore) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.failWith
}

func (f *fakeDataStore) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if call == op {
			n++
		}
	}
	return n
}

func (f *fakeDataStore) GetGoals(ctx context.Context) (*entity.Goal, error) {
	if err := f.record("GetGoals"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.goals == nil {
		return entity.DefaultGoal(), nil
	}
	return f.goals, nil
}

func (f *fakeDataStore) UpdateGoals(ctx context.Context, patch entity.GoalPatch) (*entity.Goal, error) {
	if err := f.record("UpdateGoals"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.goals == nil {
		f.goals = entity.DefaultGoal()
	}
	f.goals.Apply(patch)
	return f.goals, nil
}

func (f *fakeDataStore) GetPreferences(ctx context.Context) (*entity.Preferences, error) {
	if err := f.record("GetPreferences"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prefs == nil {
		return entity.DefaultPreferences(), nil
	}
	return f.prefs, nil
}

func (f *fakeDataStore) UpdatePreferences(ctx context.Context, patch entity.PreferencesPatch) (*entity.Preferences, error) {
	if err := f.record("UpdatePreferences"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prefs == nil {
		f.prefs = entity.DefaultPreferences()
	}
	f.prefs.Apply(patch)
	return f.prefs, nil
}

func (f *fakeDataStore) GetDailyEntry(ctx context.Context, date time.Time) (*entity.DailyEntry, error) {
	if err := f.record("GetDailyEntry"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[entity.DateKey(date)], nil
}

func (f *fakeDataStore) GetDailyEntries(ctx context.Context, start, end time.Time) ([]*entity.DailyEntry, error) {
	if err := f.record("GetDailyEntries"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var entries []*entity.DailyEntry
	for _, entry := range f.entries {
		entries = append(entries, entry)
	}
	return entries, nil
}

func (f *fakeDataStore) AddIncomeToDay(ctx context.Context, date time.Time, amount decimal.Decimal, source entity.IncomeSource) (*entity.DailyEntry, error) {
	if err := f.record("AddIncomeToDay"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := entity.DateKey(date)
	entry := f.entries[key]
	if entry == nil {
		entry = entity.NewDailyEntry(date)
		f.entries[key] = entry
	}
	entry.AddIncome(amount, source)
	return entry, nil
}

func (f *fakeDataStore) UpdateDayEntry(ctx context.Context, entry *entity.DailyEntry) (*entity.DailyEntry, error) {
	if err := f.record("UpdateDayEntry"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry.IsEmpty() {
		delete(f.entries, entry.Date)
		return nil, nil
	}
	f.entries[entry.Date] = entry
	return entry, nil
}

func (f *fakeDataStore) DeleteDayEntry(ctx context.Context, date time.Time) error {
	if err := f.record("DeleteDayEntry"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, entity.DateKey(date))
	return nil
}

func (f *fakeDataStore) GetMonthlyEntry(ctx context.Context, year int, month time.Month) (*entity.MonthlyEntry, error) {
	if err := f.record("GetMonthlyEntry"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeDataStore) GetMonthlyEntries(ctx context.Context, startYear int, startMonth time.Month, endYear int, endMonth time.Month) ([]*entity.MonthlyEntry, error) {
	if err := f.record("GetMonthlyEntries"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeDataStore) GetIncomeSources(ctx context.Context) ([]entity.IncomeSource, error) {
	if err := f.record("GetIncomeSources"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sources, nil
}

func (f *fakeDataStore) AddIncomeSource(ctx context.Context, source entity.IncomeSource) ([]entity.IncomeSource, error) {
	if err := f.record("AddIncomeSource"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.sources {
		if existing.ID == source.ID {
			return f.sources, nil
		}
	}
	f.sources = append(f.sources, source)
	return f.sources, nil
}

func (f *fakeDataStore) UpdateIncomeSource(ctx context.Context, id string, patch entity.IncomeSourcePatch) ([]entity.IncomeSource, error) {
	if err := f.record("UpdateIncomeSource"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sources {
		if f.sources[i].ID == id {
			if patch.Name != nil {
				f.sources[i].Name = *patch.Name
			}
			if patch.Color != nil {
				f.sources[i].Color = *patch.Color
			}
		}
	}
	return f.sources, nil
}

func (f *fakeDataStore) ClearAllData(ctx context.Context) error {
	if err := f.record("ClearAllData"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.goals = nil
	f.prefs = nil
	f.entries = make(map[string]*entity.DailyEntry)
	f.sources = nil
	return nil
}

func (f *fakeDataStore) ExportData(ctx context.Context) (*entity.Snapshot, error) {
	if err := f.record("ExportData"); err != nil {
		return nil, err
	}
	return entity.NewSnapshot(entity.SnapshotData{
		Goals:          entity.DefaultGoal(),
		Preferences:    entity.DefaultPreferences(),
		IncomeSources:  []entity.IncomeSource{},
		DailyEntries:   map[string]*entity.DailyEntry{},
		MonthlyEntries: map[string]*entity.MonthlyEntry{},
	}), nil
}

func (f *fakeDataStore) ImportData(ctx context.Context, snapshot *entity.Snapshot) error {
	return f.record("ImportData")
}

// fakeQueue is an in-memory SyncQueue.
type fakeQueue struct {
	mu         sync.Mutex
	actions    []*entity.SyncAction
	failWith   error
	failRemove error
}

func (q *fakeQueue) Enqueue(ctx context.Context, action *entity.SyncAction) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failWith != nil {
		return q.failWith
	}
	q.actions = append(q.actions, action)
	return nil
}

func (q *fakeQueue) List(ctx context.Context) ([]*entity.SyncAction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failWith != nil {
		return nil, q.failWith
	}
	out := make([]*entity.SyncAction, len(q.actions))
	copy(out, q.actions)
	return out, nil
}

func (q *fakeQueue) Remove(ctx context.Context, id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failWith != nil {
		return q.failWith
	}
	if q.failRemove != nil {
		return q.failRemove
	}
	for i, action := range q.actions {
		if action.ID == id {
			q.actions = append(q.actions[:i], q.actions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (q *fakeQueue) Size(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failWith != nil {
		return 0, q.failWith
	}
	return len(q.actions), nil
}

func (q *fakeQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.actions = nil
	return nil
}

// fakeMonitor is a settable ConnectivityMonitor.
type fakeMonitor struct {
	mu          sync.Mutex
	online      bool
	subscribers []func(bool)
}

func (m *fakeMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *fakeMonitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
	return func() {}
}

func (m *fakeMonitor) setOnline(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	fns := append([]func(bool){}, m.subscribers...)
	m.mu.Unlock()
	if changed {
		for _, fn := range fns {
			fn(online)
		}
	}
}
