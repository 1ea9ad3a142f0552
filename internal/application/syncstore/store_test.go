package syncstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/application/session"
	"github.com/bossbitch/backend/internal/domain/entity"
)

type storeFixture struct {
	store   *Store
	local   *fakeDataStore
	remote  *fakeDataStore
	queue   *fakeQueue
	monitor *fakeMonitor
	session *session.Manager
}

// newFixture wires a Store over fakes. When signedIn is set the session
// is authenticated before construction so no background replay fires.
func newFixture(signedIn, online bool) *storeFixture {
	f := &storeFixture{
		local:   newFakeDataStore(),
		remote:  newFakeDataStore(),
		queue:   &fakeQueue{},
		monitor: &fakeMonitor{online: online},
		session: session.NewManager(),
	}
	if signedIn {
		f.session.SignIn(uuid.New(), "boss@example.com")
	}
	factory := func(uuid.UUID) adapter.DataStore { return f.remote }
	f.store = New(f.local, factory, f.queue, f.monitor, f.session)
	return f
}

func (f *storeFixture) queueSize(t *testing.T) int {
	t.Helper()
	size, err := f.queue.Size(context.Background())
	if err != nil {
		t.Fatalf("failed to read queue size: %v", err)
	}
	return size
}

func TestStore_Routing(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	source := entity.IncomeSource{ID: "freelance", Name: "Freelance"}

	t.Run("signed in and online writes go remote", func(t *testing.T) {
		f := newFixture(true, true)

		if _, err := f.store.AddIncomeToDay(ctx, day, decimal.NewFromInt(100), source); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.remote.callCount("AddIncomeToDay") != 1 {
			t.Error("expected the write to reach the remote store")
		}
		if f.local.callCount("AddIncomeToDay") != 0 {
			t.Error("expected the local store to be untouched")
		}
		if f.queueSize(t) != 0 {
			t.Error("expected nothing queued for a successful remote write")
		}
	})

	t.Run("signed in but offline commits locally and queues", func(t *testing.T) {
		f := newFixture(true, false)

		if _, err := f.store.AddIncomeToDay(ctx, day, decimal.NewFromInt(100), source); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.local.callCount("AddIncomeToDay") != 1 {
			t.Error("expected the write to commit locally")
		}
		if f.remote.callCount("AddIncomeToDay") != 0 {
			t.Error("expected the remote store to be skipped while offline")
		}
		if f.queueSize(t) != 1 {
			t.Fatalf("expected 1 queued action, got %d", f.queueSize(t))
		}

		actions, _ := f.queue.List(ctx)
		if actions[0].Path != entity.DailyEntryPath("2025-03-10") {
			t.Errorf("unexpected queued path %s", actions[0].Path)
		}
		if actions[0].Type != entity.SyncActionAdd {
			t.Errorf("unexpected queued type %s", actions[0].Type)
		}
	})

	t.Run("remote write failure falls back to local and queues", func(t *testing.T) {
		f := newFixture(true, true)
		f.remote.failWith = errors.New("connection refused")

		goal := decimal.NewFromInt(2500)
		if _, err := f.store.UpdateGoals(ctx, entity.GoalPatch{DailyGoal: &goal}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.local.callCount("UpdateGoals") != 1 {
			t.Error("expected the write to fall back to the local store")
		}
		if f.queueSize(t) != 1 {
			t.Fatalf("expected 1 queued action, got %d", f.queueSize(t))
		}
		actions, _ := f.queue.List(ctx)
		if actions[0].Path != entity.PathGoals {
			t.Errorf("unexpected queued path %s", actions[0].Path)
		}
	})

	t.Run("anonymous writes stay local and are never queued", func(t *testing.T) {
		f := newFixture(false, true)

		if _, err := f.store.AddIncomeToDay(ctx, day, decimal.NewFromInt(100), source); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.local.callCount("AddIncomeToDay") != 1 {
			t.Error("expected the write to commit locally")
		}
		if f.remote.callCount("AddIncomeToDay") != 0 {
			t.Error("expected no remote call for an anonymous user")
		}
		if f.queueSize(t) != 0 {
			t.Error("expected nothing queued for an anonymous user")
		}
	})

	t.Run("remote read failure serves local data", func(t *testing.T) {
		f := newFixture(true, true)
		f.remote.failWith = errors.New("connection refused")

		goals, err := f.store.GetGoals(ctx)
		if err != nil {
			t.Fatalf("expected the read to fall back, got error: %v", err)
		}
		if goals == nil {
			t.Fatal("expected goals from the local store")
		}
		if f.local.callCount("GetGoals") != 1 {
			t.Error("expected the read to hit the local store")
		}
	})

	t.Run("delete queues a delete action", func(t *testing.T) {
		f := newFixture(true, false)

		if err := f.store.DeleteDayEntry(ctx, day); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		actions, _ := f.queue.List(ctx)
		if len(actions) != 1 {
			t.Fatalf("expected 1 queued action, got %d", len(actions))
		}
		if actions[0].Type != entity.SyncActionDelete || len(actions[0].Data) != 0 {
			t.Errorf("expected a bare delete action, got %s with %d payload bytes", actions[0].Type, len(actions[0].Data))
		}
	})

	t.Run("queue write failure does not fail the local commit", func(t *testing.T) {
		f := newFixture(true, false)
		f.queue.failWith = errors.New("disk full")

		entry, err := f.store.AddIncomeToDay(ctx, day, decimal.NewFromInt(100), source)
		if err != nil {
			t.Fatalf("expected the local commit to survive a queue failure, got %v", err)
		}
		if entry == nil {
			t.Fatal("expected the committed entry back")
		}
	})
}

func TestStore_PendingActions(t *testing.T) {
	f := newFixture(true, false)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		goal := decimal.NewFromInt(int64(1000 + i))
		if _, err := f.store.UpdateGoals(ctx, entity.GoalPatch{DailyGoal: &goal}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	pending, err := f.store.PendingActions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pending != 3 {
		t.Errorf("expected 3 pending actions, got %d", pending)
	}
}

func TestStore_RemoteLifecycle(t *testing.T) {
	t.Run("sign-out drops the remote store", func(t *testing.T) {
		f := newFixture(true, true)

		if _, ok := f.store.Remote(); !ok {
			t.Fatal("expected a remote store while signed in")
		}

		f.session.SignOut()

		if _, ok := f.store.Remote(); ok {
			t.Error("expected no remote store after sign-out")
		}
	})

	t.Run("sign-in builds the remote store", func(t *testing.T) {
		f := newFixture(false, false)

		if _, ok := f.store.Remote(); ok {
			t.Fatal("expected no remote store while anonymous")
		}

		f.session.SignIn(uuid.New(), "boss@example.com")

		if _, ok := f.store.Remote(); !ok {
			t.Error("expected a remote store after sign-in")
		}
	})
}
