// Package syncops contains sync status and queue replay use cases.
package syncops

import (
	"context"

	"github.com/bossbitch/backend/internal/application/syncstore"
)

// ReplayQueueOutput represents the output of a manual queue replay.
type ReplayQueueOutput struct {
	Applied int
	Failed  int
}

// ReplayQueueUseCase replays the offline queue on demand, the manual
// counterpart of the automatic sign-in and reconnect triggers.
type ReplayQueueUseCase struct {
	store *syncstore.Store
}

// NewReplayQueueUseCase creates a new ReplayQueueUseCase instance.
func NewReplayQueueUseCase(store *syncstore.Store) *ReplayQueueUseCase {
	return &ReplayQueueUseCase{store: store}
}

// Execute runs one replay pass. A replay already in progress surfaces
// as domainerror.ErrReplayInProgress.
func (uc *ReplayQueueUseCase) Execute(ctx context.Context) (*ReplayQueueOutput, error) {
	applied, failed, err := uc.store.Replayer().Replay(ctx)
	if err != nil {
		return nil, err
	}
	return &ReplayQueueOutput{
		Applied: applied,
		Failed:  failed,
	}, nil
}
