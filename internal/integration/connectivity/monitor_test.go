package connectivity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMonitor_SetOnline(t *testing.T) {
	t.Run("starts offline", func(t *testing.T) {
		monitor := NewMonitor(func(ctx context.Context) error { return nil }, discardLogger())
		if monitor.Online() {
			t.Error("expected a fresh monitor to be offline")
		}
	})

	t.Run("notifies on transitions only", func(t *testing.T) {
		monitor := NewMonitor(func(ctx context.Context) error { return nil }, discardLogger())

		var transitions []bool
		monitor.Subscribe(func(online bool) {
			transitions = append(transitions, online)
		})

		monitor.SetOnline(true)
		monitor.SetOnline(true) // no transition
		monitor.SetOnline(false)

		expected := []bool{true, false}
		if len(transitions) != len(expected) {
			t.Fatalf("expected %d transitions, got %d", len(expected), len(transitions))
		}
		for i := range expected {
			if transitions[i] != expected[i] {
				t.Errorf("transition %d: expected %v, got %v", i, expected[i], transitions[i])
			}
		}
	})

	t.Run("unsubscribe stops notifications", func(t *testing.T) {
		monitor := NewMonitor(func(ctx context.Context) error { return nil }, discardLogger())

		calls := 0
		unsubscribe := monitor.Subscribe(func(bool) { calls++ })
		unsubscribe()

		monitor.SetOnline(true)
		if calls != 0 {
			t.Errorf("expected no notifications after unsubscribe, got %d", calls)
		}
	})
}

func TestMonitor_Polling(t *testing.T) {
	t.Run("probe success flips the monitor online", func(t *testing.T) {
		monitor := NewMonitor(func(ctx context.Context) error { return nil }, discardLogger()).
			WithInterval(10 * time.Millisecond)

		monitor.Start(context.Background())
		defer monitor.Stop()

		// Start probes synchronously once.
		if !monitor.Online() {
			t.Error("expected the monitor to be online after a successful probe")
		}
	})

	t.Run("probe failure flips the monitor offline", func(t *testing.T) {
		var mu sync.Mutex
		fail := false
		probe := func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			if fail {
				return errors.New("connection refused")
			}
			return nil
		}

		monitor := NewMonitor(probe, discardLogger()).WithInterval(5 * time.Millisecond)

		offline := make(chan struct{})
		var once sync.Once
		monitor.Subscribe(func(online bool) {
			if !online {
				once.Do(func() { close(offline) })
			}
		})

		monitor.Start(context.Background())
		defer monitor.Stop()

		mu.Lock()
		fail = true
		mu.Unlock()

		select {
		case <-offline:
		case <-time.After(2 * time.Second):
			t.Fatal("monitor never went offline")
		}
	})

	t.Run("probe honors the configured timeout", func(t *testing.T) {
		probe := func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}

		monitor := NewMonitor(probe, discardLogger()).
			WithInterval(time.Hour).
			WithTimeout(10 * time.Millisecond)

		start := time.Now()
		monitor.Start(context.Background())
		defer monitor.Stop()

		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("initial probe took %s, expected the timeout to cut it short", elapsed)
		}
		if monitor.Online() {
			t.Error("expected a timed-out probe to leave the monitor offline")
		}
	})

	t.Run("stop halts the poll loop", func(t *testing.T) {
		monitor := NewMonitor(func(ctx context.Context) error { return nil }, discardLogger()).
			WithInterval(time.Millisecond)

		monitor.Start(context.Background())
		monitor.Stop()

		// Stop before Start is also safe.
		fresh := NewMonitor(func(ctx context.Context) error { return nil }, discardLogger())
		fresh.Stop()
	})
}
