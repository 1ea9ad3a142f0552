// Package entry contains daily and monthly income entry use cases.
package entry

import (
	"context"
	"time"

	"github.com/bossbitch/backend/internal/application/adapter"
)

// DeleteDayInput represents the input for deleting one day's entry.
type DeleteDayInput struct {
	Date time.Time
}

// DeleteDayUseCase removes one day's entry. Deleting an absent day is a
// no-op.
type DeleteDayUseCase struct {
	store adapter.DataStore
}

// NewDeleteDayUseCase creates a new DeleteDayUseCase instance.
func NewDeleteDayUseCase(store adapter.DataStore) *DeleteDayUseCase {
	return &DeleteDayUseCase{store: store}
}

// Execute deletes the entry for the given date.
func (uc *DeleteDayUseCase) Execute(ctx context.Context, input DeleteDayInput) error {
	return uc.store.DeleteDayEntry(ctx, input.Date)
}
