package syncstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

func newReplayerFixture(remote *fakeDataStore) (*Replayer, *fakeQueue) {
	queue := &fakeQueue{}
	backend := func() (adapter.DataStore, bool) {
		if remote == nil {
			return nil, false
		}
		return remote, true
	}
	return NewReplayer(queue, newKeyMutex(), backend), queue
}

func enqueueAction(t *testing.T, queue *fakeQueue, actionType entity.SyncActionType, path string, payload any) {
	t.Helper()
	var data json.RawMessage
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
		data = raw
	}
	if err := queue.Enqueue(context.Background(), entity.NewSyncAction(actionType, path, data)); err != nil {
		t.Fatalf("failed to enqueue: %v", err)
	}
}

func TestReplayer_Replay(t *testing.T) {
	ctx := context.Background()

	t.Run("applies queued actions in order and drains the queue", func(t *testing.T) {
		remote := newFakeDataStore()
		replayer, queue := newReplayerFixture(remote)

		enqueueAction(t, queue, entity.SyncActionAdd, entity.DailyEntryPath("2025-03-10"), addIncomePayload{
			Date:   "2025-03-10",
			Amount: decimal.NewFromInt(100),
			Source: entity.IncomeSource{ID: "freelance", Name: "Freelance"},
		})
		goals := entity.DefaultGoal()
		enqueueAction(t, queue, entity.SyncActionUpdate, entity.PathGoals, goals)

		applied, failed, err := replayer.Replay(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if applied != 2 || failed != 0 {
			t.Errorf("expected 2 applied and 0 failed, got %d and %d", applied, failed)
		}

		if size, _ := queue.Size(ctx); size != 0 {
			t.Errorf("expected an empty queue, got %d", size)
		}
		if remote.callCount("AddIncomeToDay") != 1 || remote.callCount("UpdateGoals") != 1 {
			t.Error("expected both actions to reach the remote store")
		}
	})

	t.Run("a failed action stays queued and does not stop the rest", func(t *testing.T) {
		remote := newFakeDataStore()
		replayer, queue := newReplayerFixture(remote)

		// Unparseable date key makes the first action fail.
		enqueueAction(t, queue, entity.SyncActionDelete, entity.DailyEntryPath("not-a-date"), nil)
		enqueueAction(t, queue, entity.SyncActionAdd, entity.IncomeSourcePath("tips"), entity.IncomeSource{ID: "tips", Name: "Tips"})

		applied, failed, err := replayer.Replay(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if applied != 1 || failed != 1 {
			t.Errorf("expected 1 applied and 1 failed, got %d and %d", applied, failed)
		}

		actions, _ := queue.List(ctx)
		if len(actions) != 1 {
			t.Fatalf("expected the failed action to stay queued, queue has %d", len(actions))
		}
		if actions[0].Path != entity.DailyEntryPath("not-a-date") {
			t.Errorf("wrong action kept: %s", actions[0].Path)
		}
	})

	t.Run("no backend available", func(t *testing.T) {
		replayer, queue := newReplayerFixture(nil)
		enqueueAction(t, queue, entity.SyncActionUpdate, entity.PathGoals, entity.DefaultGoal())

		_, _, err := replayer.Replay(ctx)

		var syncErr *domainerror.SyncError
		if !errors.As(err, &syncErr) || syncErr.Code != domainerror.ErrCodeRemoteUnavailable {
			t.Errorf("expected a remote-unavailable error, got %v", err)
		}
		if size, _ := queue.Size(ctx); size != 1 {
			t.Error("expected the queue to be untouched")
		}
	})

	t.Run("second concurrent replay is rejected", func(t *testing.T) {
		remote := newFakeDataStore()
		replayer, _ := newReplayerFixture(remote)

		replayer.running.Store(true)
		_, _, err := replayer.Replay(ctx)
		if !errors.Is(err, domainerror.ErrReplayInProgress) {
			t.Errorf("expected ErrReplayInProgress, got %v", err)
		}
		replayer.running.Store(false)

		if replayer.Running() {
			t.Error("expected the replayer to be idle")
		}
	})

	t.Run("unknown path counts as failed", func(t *testing.T) {
		remote := newFakeDataStore()
		replayer, queue := newReplayerFixture(remote)
		enqueueAction(t, queue, entity.SyncActionUpdate, "mystery/42", nil)

		applied, failed, err := replayer.Replay(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if applied != 0 || failed != 1 {
			t.Errorf("expected 0 applied and 1 failed, got %d and %d", applied, failed)
		}
	})

	t.Run("waits for a live source write holding the catalog lock", func(t *testing.T) {
		remote := newFakeDataStore()
		queue := &fakeQueue{}
		locks := newKeyMutex()
		backend := func() (adapter.DataStore, bool) { return remote, true }
		replayer := NewReplayer(queue, locks, backend)

		name := "Gigs"
		enqueueAction(t, queue, entity.SyncActionUpdate, entity.IncomeSourcePath("freelance"), sourcePatchPayload{Name: &name})

		// The façade locks the whole catalog for source writes; replay
		// of a source action must contend on the same key.
		unlock := locks.Lock(entity.PathIncomeSources)
		done := make(chan struct{})
		go func() {
			replayer.Replay(ctx)
			close(done)
		}()

		select {
		case <-done:
			t.Fatal("replay applied a source action while the catalog lock was held")
		case <-time.After(50 * time.Millisecond):
		}

		unlock()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("replay did not resume after the catalog lock was released")
		}

		if remote.callCount("UpdateIncomeSource") != 1 {
			t.Error("expected the queued source update to reach the remote store")
		}
	})

	t.Run("queue removal failure aborts the pass", func(t *testing.T) {
		remote := newFakeDataStore()
		queue := &fakeQueue{}
		backend := func() (adapter.DataStore, bool) { return remote, true }
		replayer := NewReplayer(queue, newKeyMutex(), backend)

		enqueueAction(t, queue, entity.SyncActionUpdate, entity.PathGoals, entity.DefaultGoal())
		queue.failRemove = errors.New("disk error")

		_, _, err := replayer.Replay(ctx)
		if err == nil {
			t.Error("expected the pass to abort on a queue failure")
		}
	})
}
