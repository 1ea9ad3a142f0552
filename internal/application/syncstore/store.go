// Package syncstore implements the unified data service: a DataStore
// that routes each call to the remote store when a signed-in user is
// online, falls back to the always-available local store otherwise, and
// queues mutations that could not reach the remote store for later
// replay. A mutation is never silently dropped: it either lands
// remotely or is committed locally and queued.
package syncstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/application/session"
	"github.com/bossbitch/backend/internal/domain/entity"
)

// RemoteFactory builds a remote store scoped to one user's namespace.
type RemoteFactory func(userID uuid.UUID) adapter.DataStore

// Store is the unified data service façade.
type Store struct {
	local   adapter.DataStore
	factory RemoteFactory
	queue   adapter.SyncQueue
	monitor adapter.ConnectivityMonitor
	session *session.Manager
	locks   *keyMutex

	replayer *Replayer

	// remote is rebuilt on every sign-in and dropped on sign-out.
	remoteMu sync.RWMutex
	remote   adapter.DataStore
}

// New wires the façade and registers the replay triggers: connectivity
// regained and user signed in.
func New(
	local adapter.DataStore,
	factory RemoteFactory,
	queue adapter.SyncQueue,
	monitor adapter.ConnectivityMonitor,
	sess *session.Manager,
) *Store {
	s := &Store{
		local:   local,
		factory: factory,
		queue:   queue,
		monitor: monitor,
		session: sess,
		locks:   newKeyMutex(),
	}
	s.replayer = NewReplayer(queue, s.locks, s.backend)

	if userID, _, ok := sess.Current(); ok {
		s.remote = factory(userID)
	}

	sess.Subscribe(func(authenticated bool) {
		if authenticated {
			userID, _, _ := sess.Current()
			s.setRemote(s.factory(userID))
			s.triggerReplay("sign-in")
		} else {
			s.setRemote(nil)
		}
	})
	monitor.Subscribe(func(online bool) {
		if online {
			s.triggerReplay("connectivity restored")
		}
	})

	return s
}

// Replayer exposes the queue replayer, for the manual replay endpoint.
func (s *Store) Replayer() *Replayer {
	return s.replayer
}

// PendingActions returns the offline queue depth.
func (s *Store) PendingActions(ctx context.Context) (int, error) {
	return s.queue.Size(ctx)
}

func (s *Store) setRemote(remote adapter.DataStore) {
	s.remoteMu.Lock()
	s.remote = remote
	s.remoteMu.Unlock()
}

// backend returns the remote store when it should be used for this
// call: a user is signed in and the remote side is reachable.
func (s *Store) backend() (adapter.DataStore, bool) {
	s.remoteMu.RLock()
	remote := s.remote
	s.remoteMu.RUnlock()
	if remote == nil || !s.session.Authenticated() || !s.monitor.Online() {
		return nil, false
	}
	return remote, true
}

func (s *Store) triggerReplay(reason string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		applied, failed, err := s.replayer.Replay(ctx)
		if err != nil {
			slog.Debug("Replay not started", "reason", reason, "error", err)
			return
		}
		if applied > 0 || failed > 0 {
			slog.Info("Offline queue replayed",
				"trigger", reason,
				"applied", applied,
				"failed", failed,
			)
		}
	}()
}

// enqueue records a mutation for later replay. Queue write failures are
// logged, not returned: the local commit already succeeded and the UI
// must still see it.
func (s *Store) enqueue(actionType entity.SyncActionType, path string, payload any) {
	var data json.RawMessage
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			slog.Error("Failed to encode offline action", "path", path, "error", err)
			return
		}
		data = raw
	}
	action := entity.NewSyncAction(actionType, path, data)
	if err := s.queue.Enqueue(context.Background(), action); err != nil {
		slog.Error("Failed to enqueue offline action",
			"path", path,
			"type", actionType,
			"error", err,
		)
	}
}

// readFrom runs a read against the remote store when available, falling
// back to the local store on remote failure so offline reads keep
// working.
func readFrom[T any](s *Store, ctx context.Context, name string,
	read func(adapter.DataStore) (T, error),
) (T, error) {
	if remote, ok := s.backend(); ok {
		result, err := read(remote)
		if err == nil {
			return result, nil
		}
		slog.Warn("Remote read failed, serving local data", "op", name, "error", err)
	}
	return read(s.local)
}

// Goals

func (s *Store) GetGoals(ctx context.Context) (*entity.Goal, error) {
	return readFrom(s, ctx, "GetGoals", func(b adapter.DataStore) (*entity.Goal, error) {
		return b.GetGoals(ctx)
	})
}

func (s *Store) UpdateGoals(ctx context.Context, patch entity.GoalPatch) (*entity.Goal, error) {
	unlock := s.locks.Lock(entity.PathGoals)
	defer unlock()

	if remote, ok := s.backend(); ok {
		goals, err := remote.UpdateGoals(ctx, patch)
		if err == nil {
			return goals, nil
		}
		slog.Warn("Remote goals update failed, committing locally", "error", err)
	}

	goals, err := s.local.UpdateGoals(ctx, patch)
	if err != nil {
		return nil, err
	}
	if s.session.Authenticated() {
		s.enqueue(entity.SyncActionUpdate, entity.PathGoals, goals)
	}
	return goals, nil
}

// Preferences

func (s *Store) GetPreferences(ctx context.Context) (*entity.Preferences, error) {
	return readFrom(s, ctx, "GetPreferences", func(b adapter.DataStore) (*entity.Preferences, error) {
		return b.GetPreferences(ctx)
	})
}

func (s *Store) UpdatePreferences(ctx context.Context, patch entity.PreferencesPatch) (*entity.Preferences, error) {
	unlock := s.locks.Lock(entity.PathPreferences)
	defer unlock()

	if remote, ok := s.backend(); ok {
		prefs, err := remote.UpdatePreferences(ctx, patch)
		if err == nil {
			return prefs, nil
		}
		slog.Warn("Remote preferences update failed, committing locally", "error", err)
	}

	prefs, err := s.local.UpdatePreferences(ctx, patch)
	if err != nil {
		return nil, err
	}
	if s.session.Authenticated() {
		s.enqueue(entity.SyncActionUpdate, entity.PathPreferences, prefs)
	}
	return prefs, nil
}

// Daily entries

func (s *Store) GetDailyEntry(ctx context.Context, date time.Time) (*entity.DailyEntry, error) {
	return readFrom(s, ctx, "GetDailyEntry", func(b adapter.DataStore) (*entity.DailyEntry, error) {
		return b.GetDailyEntry(ctx, date)
	})
}

func (s *Store) GetDailyEntries(ctx context.Context, start, end time.Time) ([]*entity.DailyEntry, error) {
	return readFrom(s, ctx, "GetDailyEntries", func(b adapter.DataStore) ([]*entity.DailyEntry, error) {
		return b.GetDailyEntries(ctx, start, end)
	})
}

// addIncomePayload is the queued form of an AddIncomeToDay call.
type addIncomePayload struct {
	Date   string              `json:"date"`
	Amount decimal.Decimal     `json:"amount"`
	Source entity.IncomeSource `json:"source"`
}

func (s *Store) AddIncomeToDay(ctx context.Context, date time.Time, amount decimal.Decimal, source entity.IncomeSource) (*entity.DailyEntry, error) {
	path := entity.DailyEntryPath(entity.DateKey(date))
	unlock := s.locks.Lock(path)
	defer unlock()

	if remote, ok := s.backend(); ok {
		entry, err := remote.AddIncomeToDay(ctx, date, amount, source)
		if err == nil {
			return entry, nil
		}
		slog.Warn("Remote income add failed, committing locally",
			"date", entity.DateKey(date),
			"error", err,
		)
	}

	entry, err := s.local.AddIncomeToDay(ctx, date, amount, source)
	if err != nil {
		return nil, err
	}
	if s.session.Authenticated() {
		s.enqueue(entity.SyncActionAdd, path, addIncomePayload{
			Date:   entity.DateKey(date),
			Amount: amount,
			Source: source,
		})
	}
	return entry, nil
}

func (s *Store) UpdateDayEntry(ctx context.Context, entry *entity.DailyEntry) (*entity.DailyEntry, error) {
	path := entity.DailyEntryPath(entry.Date)
	unlock := s.locks.Lock(path)
	defer unlock()

	if remote, ok := s.backend(); ok {
		updated, err := remote.UpdateDayEntry(ctx, entry)
		if err == nil {
			return updated, nil
		}
		slog.Warn("Remote day update failed, committing locally", "date", entry.Date, "error", err)
	}

	updated, err := s.local.UpdateDayEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	if s.session.Authenticated() {
		s.enqueue(entity.SyncActionUpdate, path, entry)
	}
	return updated, nil
}

func (s *Store) DeleteDayEntry(ctx context.Context, date time.Time) error {
	path := entity.DailyEntryPath(entity.DateKey(date))
	unlock := s.locks.Lock(path)
	defer unlock()

	if remote, ok := s.backend(); ok {
		if err := remote.DeleteDayEntry(ctx, date); err == nil {
			return nil
		} else {
			slog.Warn("Remote day delete failed, committing locally",
				"date", entity.DateKey(date),
				"error", err,
			)
		}
	}

	if err := s.local.DeleteDayEntry(ctx, date); err != nil {
		return err
	}
	if s.session.Authenticated() {
		s.enqueue(entity.SyncActionDelete, path, nil)
	}
	return nil
}

// Monthly entries

func (s *Store) GetMonthlyEntry(ctx context.Context, year int, month time.Month) (*entity.MonthlyEntry, error) {
	return readFrom(s, ctx, "GetMonthlyEntry", func(b adapter.DataStore) (*entity.MonthlyEntry, error) {
		return b.GetMonthlyEntry(ctx, year, month)
	})
}

func (s *Store) GetMonthlyEntries(ctx context.Context, startYear int, startMonth time.Month, endYear int, endMonth time.Month) ([]*entity.MonthlyEntry, error) {
	return readFrom(s, ctx, "GetMonthlyEntries", func(b adapter.DataStore) ([]*entity.MonthlyEntry, error) {
		return b.GetMonthlyEntries(ctx, startYear, startMonth, endYear, endMonth)
	})
}

// Income sources

func (s *Store) GetIncomeSources(ctx context.Context) ([]entity.IncomeSource, error) {
	return readFrom(s, ctx, "GetIncomeSources", func(b adapter.DataStore) ([]entity.IncomeSource, error) {
		return b.GetIncomeSources(ctx)
	})
}

func (s *Store) AddIncomeSource(ctx context.Context, source entity.IncomeSource) ([]entity.IncomeSource, error) {
	path := entity.IncomeSourcePath(source.ID)
	unlock := s.locks.Lock(entity.PathIncomeSources)
	defer unlock()

	if remote, ok := s.backend(); ok {
		sources, err := remote.AddIncomeSource(ctx, source)
		if err == nil {
			return sources, nil
		}
		slog.Warn("Remote source add failed, committing locally", "source", source.ID, "error", err)
	}

	sources, err := s.local.AddIncomeSource(ctx, source)
	if err != nil {
		return nil, err
	}
	if s.session.Authenticated() {
		s.enqueue(entity.SyncActionAdd, path, source)
	}
	return sources, nil
}

// sourcePatchPayload is the queued form of an UpdateIncomeSource call.
type sourcePatchPayload struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (s *Store) UpdateIncomeSource(ctx context.Context, id string, patch entity.IncomeSourcePatch) ([]entity.IncomeSource, error) {
	path := entity.IncomeSourcePath(id)
	unlock := s.locks.Lock(entity.PathIncomeSources)
	defer unlock()

	if remote, ok := s.backend(); ok {
		sources, err := remote.UpdateIncomeSource(ctx, id, patch)
		if err == nil {
			return sources, nil
		}
		slog.Warn("Remote source update failed, committing locally", "source", id, "error", err)
	}

	sources, err := s.local.UpdateIncomeSource(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if s.session.Authenticated() {
		s.enqueue(entity.SyncActionUpdate, path, sourcePatchPayload{
			Name:  patch.Name,
			Color: patch.Color,
		})
	}
	return sources, nil
}

// Data management. These route to the active backend without queueing:
// import and clear failures are reported to the caller, matching the
// original behavior, and export is a read.

func (s *Store) ClearAllData(ctx context.Context) error {
	if remote, ok := s.backend(); ok {
		return remote.ClearAllData(ctx)
	}
	return s.local.ClearAllData(ctx)
}

func (s *Store) ExportData(ctx context.Context) (*entity.Snapshot, error) {
	return readFrom(s, ctx, "ExportData", func(b adapter.DataStore) (*entity.Snapshot, error) {
		return b.ExportData(ctx)
	})
}

func (s *Store) ImportData(ctx context.Context, snapshot *entity.Snapshot) error {
	if remote, ok := s.backend(); ok {
		return remote.ImportData(ctx, snapshot)
	}
	return s.local.ImportData(ctx, snapshot)
}

// Local returns the underlying local store, used by the local-to-remote
// migration after sign-in.
func (s *Store) Local() adapter.DataStore {
	return s.local
}

// Remote returns the current user's remote store, or false when no user
// is signed in.
func (s *Store) Remote() (adapter.DataStore, bool) {
	s.remoteMu.RLock()
	defer s.remoteMu.RUnlock()
	if s.remote == nil {
		return nil, false
	}
	return s.remote, true
}

var _ adapter.DataStore = (*Store)(nil)
