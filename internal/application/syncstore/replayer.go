package syncstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// Replayer drains the offline action queue into the remote store.
// Replay runs are serialized: a second trigger while one is in flight
// returns ErrReplayInProgress and does nothing. Actions replay in
// insertion order with at-least-once semantics; a failed action stays
// queued for the next trigger and does not stop the actions behind it.
//
// Conflict policy is last-writer-wins: actions are applied verbatim, so
// the newest queued state for a path overwrites whatever another device
// wrote remotely in the meantime.
type Replayer struct {
	queue   adapter.SyncQueue
	locks   *keyMutex
	backend func() (adapter.DataStore, bool)
	running atomic.Bool
}

// NewReplayer creates a replayer sharing the façade's per-path locks,
// so replay never interleaves with a live write on the same record.
func NewReplayer(queue adapter.SyncQueue, locks *keyMutex, backend func() (adapter.DataStore, bool)) *Replayer {
	return &Replayer{
		queue:   queue,
		locks:   locks,
		backend: backend,
	}
}

// Running reports whether a replay pass is currently in flight.
func (r *Replayer) Running() bool {
	return r.running.Load()
}

// Replay applies queued actions to the remote store in insertion order.
// It returns how many actions were applied (and removed) and how many
// failed (and stayed queued). A successfully applied action is removed
// from the queue before the next one is attempted; if removal itself
// fails the pass aborts so the guarantee holds.
func (r *Replayer) Replay(ctx context.Context) (applied, failed int, err error) {
	if !r.running.CompareAndSwap(false, true) {
		return 0, 0, domainerror.ErrReplayInProgress
	}
	defer r.running.Store(false)

	remote, ok := r.backend()
	if !ok {
		return 0, 0, domainerror.NewSyncError(
			domainerror.ErrCodeRemoteUnavailable,
			"remote store not available for replay",
			domainerror.ErrRemoteUnavailable,
		)
	}

	actions, err := r.queue.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read offline queue: %w", err)
	}

	for _, action := range actions {
		if ctx.Err() != nil {
			return applied, failed, ctx.Err()
		}

		unlock := r.locks.Lock(lockKey(action.Path))
		applyErr := r.apply(ctx, remote, action)
		if applyErr != nil {
			unlock()
			failed++
			slog.Warn("Replay action failed, keeping it queued",
				"action_id", action.ID,
				"path", action.Path,
				"type", action.Type,
				"error", applyErr,
			)
			continue
		}

		removeErr := r.queue.Remove(ctx, action.ID)
		unlock()
		if removeErr != nil {
			return applied, failed, fmt.Errorf("failed to remove replayed action %s: %w", action.ID, removeErr)
		}
		applied++
	}

	return applied, failed, nil
}

// lockKey maps an action path to the key the façade locks for the same
// record. The income-source catalog is one record, so source actions
// contend on the collection key regardless of the id in the path.
func lockKey(path string) string {
	if collection, _ := entity.SplitPath(path); collection == entity.PathIncomeSources {
		return entity.PathIncomeSources
	}
	return path
}

// apply re-derives the concrete backend call from (type, path, data).
func (r *Replayer) apply(ctx context.Context, remote adapter.DataStore, action *entity.SyncAction) error {
	collection, key := entity.SplitPath(action.Path)

	switch collection {
	case entity.PathGoals:
		return r.applyGoals(ctx, remote, action)
	case entity.PathPreferences:
		return r.applyPreferences(ctx, remote, action)
	case entity.PathDailyEntries:
		return r.applyDailyEntry(ctx, remote, action, key)
	case entity.PathIncomeSources:
		return r.applyIncomeSource(ctx, remote, action, key)
	default:
		return domainerror.NewSyncError(
			domainerror.ErrCodeUnknownActionPath,
			"no backend operation for path "+action.Path,
			domainerror.ErrUnknownActionPath,
		)
	}
}

func (r *Replayer) applyGoals(ctx context.Context, remote adapter.DataStore, action *entity.SyncAction) error {
	if action.Type != entity.SyncActionUpdate {
		return unknownType(action)
	}
	var goals entity.Goal
	if err := json.Unmarshal(action.Data, &goals); err != nil {
		return fmt.Errorf("failed to decode queued goals: %w", err)
	}
	_, err := remote.UpdateGoals(ctx, entity.GoalPatch{
		DailyGoal:   &goals.DailyGoal,
		MonthlyGoal: &goals.MonthlyGoal,
		ActiveDays:  &goals.ActiveDays,
	})
	return err
}

func (r *Replayer) applyPreferences(ctx context.Context, remote adapter.DataStore, action *entity.SyncAction) error {
	if action.Type != entity.SyncActionUpdate {
		return unknownType(action)
	}
	var prefs entity.Preferences
	if err := json.Unmarshal(action.Data, &prefs); err != nil {
		return fmt.Errorf("failed to decode queued preferences: %w", err)
	}
	_, err := remote.UpdatePreferences(ctx, entity.PreferencesPatch{
		IsDarkMode: &prefs.IsDarkMode,
		Colors:     &prefs.Colors,
	})
	return err
}

func (r *Replayer) applyDailyEntry(ctx context.Context, remote adapter.DataStore, action *entity.SyncAction, dateKey string) error {
	date, err := entity.ParseDateKey(dateKey)
	if err != nil {
		return fmt.Errorf("queued action has invalid date key %q: %w", dateKey, err)
	}

	switch action.Type {
	case entity.SyncActionAdd:
		var payload addIncomePayload
		if err := json.Unmarshal(action.Data, &payload); err != nil {
			return fmt.Errorf("failed to decode queued income add: %w", err)
		}
		_, err := remote.AddIncomeToDay(ctx, date, payload.Amount, payload.Source)
		return err
	case entity.SyncActionUpdate:
		var entry entity.DailyEntry
		if err := json.Unmarshal(action.Data, &entry); err != nil {
			return fmt.Errorf("failed to decode queued day entry: %w", err)
		}
		_, err := remote.UpdateDayEntry(ctx, &entry)
		return err
	case entity.SyncActionDelete:
		return remote.DeleteDayEntry(ctx, date)
	default:
		return unknownType(action)
	}
}

func (r *Replayer) applyIncomeSource(ctx context.Context, remote adapter.DataStore, action *entity.SyncAction, id string) error {
	switch action.Type {
	case entity.SyncActionAdd:
		var source entity.IncomeSource
		if err := json.Unmarshal(action.Data, &source); err != nil {
			return fmt.Errorf("failed to decode queued income source: %w", err)
		}
		_, err := remote.AddIncomeSource(ctx, source)
		return err
	case entity.SyncActionUpdate:
		var payload sourcePatchPayload
		if err := json.Unmarshal(action.Data, &payload); err != nil {
			return fmt.Errorf("failed to decode queued source patch: %w", err)
		}
		_, err := remote.UpdateIncomeSource(ctx, id, entity.IncomeSourcePatch{
			Name:  payload.Name,
			Color: payload.Color,
		})
		return err
	default:
		return unknownType(action)
	}
}

func unknownType(action *entity.SyncAction) error {
	return domainerror.NewSyncError(
		domainerror.ErrCodeUnknownActionType,
		fmt.Sprintf("no %s operation for path %s", action.Type, action.Path),
		domainerror.ErrUnknownActionType,
	)
}
