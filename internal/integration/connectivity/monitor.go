// Package connectivity probes the remote database and tracks whether it
// is reachable. It stands in for the browser online/offline events the
// rest of the sync layer keys off.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bossbitch/backend/internal/application/adapter"
)

const (
	defaultProbeInterval = 15 * time.Second
	defaultProbeTimeout  = 5 * time.Second
)

// Probe checks remote reachability once. A nil error means online.
type Probe func(ctx context.Context) error

// Monitor polls a Probe on a fixed interval and notifies subscribers on
// state transitions. It implements adapter.ConnectivityMonitor.
type Monitor struct {
	probe    Probe
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	online atomic.Bool

	mu          sync.Mutex
	subscribers map[int]func(online bool)
	nextID      int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a monitor around the given probe. The monitor
// starts offline until the first probe succeeds; call Start to begin
// polling.
func NewMonitor(probe Probe, logger *slog.Logger) *Monitor {
	return &Monitor{
		probe:       probe,
		interval:    defaultProbeInterval,
		timeout:     defaultProbeTimeout,
		logger:      logger,
		subscribers: map[int]func(online bool){},
	}
}

// WithInterval overrides the probe interval. Useful in tests.
func (m *Monitor) WithInterval(interval time.Duration) *Monitor {
	m.interval = interval
	return m
}

// WithTimeout overrides the per-probe timeout.
func (m *Monitor) WithTimeout(timeout time.Duration) *Monitor {
	m.timeout = timeout
	return m
}

// Start probes once immediately, then keeps polling until Stop is
// called or the context is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	m.check(ctx)

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.check(ctx)
			}
		}
	}()
}

// Stop halts polling and waits for the poll loop to exit.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

// Online reports the last observed reachability state.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Subscribe registers a callback invoked on every online/offline
// transition. The returned function removes the subscription.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// SetOnline forces the state, notifying subscribers on a transition.
// Exposed for tests and for wiring without a live probe.
func (m *Monitor) SetOnline(online bool) {
	if m.online.Swap(online) == online {
		return
	}

	m.mu.Lock()
	callbacks := make([]func(online bool), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		callbacks = append(callbacks, fn)
	}
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(online)
	}
}

// check runs one probe and records the result.
func (m *Monitor) check(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.probe(probeCtx)
	online := err == nil
	if online != m.online.Load() {
		if online {
			m.logger.Info("remote store reachable")
		} else {
			m.logger.Warn("remote store unreachable", slog.String("error", err.Error()))
		}
	}
	m.SetOnline(online)
}

var _ adapter.ConnectivityMonitor = (*Monitor)(nil)
