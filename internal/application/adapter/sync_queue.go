// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// SyncQueue is the durable offline action queue: append-only with
// removal by id, surviving process restarts. List returns actions in
// insertion order; replay consumes them front to back.
type SyncQueue interface {
	// Enqueue appends an action to the queue.
	Enqueue(ctx context.Context, action *entity.SyncAction) error

	// List returns all queued actions in insertion order.
	List(ctx context.Context) ([]*entity.SyncAction, error)

	// Remove deletes one action by id. Removing an absent id is a no-op.
	Remove(ctx context.Context, id uuid.UUID) error

	// Size returns the number of queued actions.
	Size(ctx context.Context) (int, error)

	// Clear drops every queued action.
	Clear(ctx context.Context) error
}
