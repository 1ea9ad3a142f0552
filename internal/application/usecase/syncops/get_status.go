// Package syncops contains sync status and queue replay use cases.
package syncops

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/application/session"
	"github.com/bossbitch/backend/internal/application/syncstore"
)

// GetStatusOutput represents the current sync state of the device.
type GetStatusOutput struct {
	Online         bool
	Authenticated  bool
	UserEmail      string
	PendingActions int
	InFlight       int64
}

// GetStatusUseCase reports connectivity, session and queue state.
type GetStatusUseCase struct {
	store    *syncstore.Store
	monitor  adapter.ConnectivityMonitor
	session  *session.Manager
	inflight func() int64
}

// NewGetStatusUseCase creates a new GetStatusUseCase instance.
func NewGetStatusUseCase(
	store *syncstore.Store,
	monitor adapter.ConnectivityMonitor,
	sess *session.Manager,
	inflight func() int64,
) *GetStatusUseCase {
	return &GetStatusUseCase{
		store:    store,
		monitor:  monitor,
		session:  sess,
		inflight: inflight,
	}
}

// Execute returns the current sync status.
func (uc *GetStatusUseCase) Execute(ctx context.Context) (*GetStatusOutput, error) {
	pending, err := uc.store.PendingActions(ctx)
	if err != nil {
		return nil, err
	}

	_, email, authenticated := uc.session.Current()
	return &GetStatusOutput{
		Online:         uc.monitor.Online(),
		Authenticated:  authenticated,
		UserEmail:      email,
		PendingActions: pending,
		InFlight:       uc.inflight(),
	}, nil
}
