// Package entry contains daily and monthly income entry use cases.
package entry

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// UpdateDayInput represents the input for replacing one day's entry.
type UpdateDayInput struct {
	Entry *entity.DailyEntry
}

// UpdateDayOutput represents the output of replacing one day's entry.
// Entry is nil when the replacement emptied and deleted the day.
type UpdateDayOutput struct {
	Entry *entity.DailyEntry
}

// UpdateDayUseCase replaces a day's entry wholesale, used by the edit
// screen to correct or remove recorded segments.
type UpdateDayUseCase struct {
	store adapter.DataStore
}

// NewUpdateDayUseCase creates a new UpdateDayUseCase instance.
func NewUpdateDayUseCase(store adapter.DataStore) *UpdateDayUseCase {
	return &UpdateDayUseCase{store: store}
}

// Execute validates and stores the replacement entry. Segment values
// must not be negative; the stored progress is recomputed from the
// segments.
func (uc *UpdateDayUseCase) Execute(ctx context.Context, input UpdateDayInput) (*UpdateDayOutput, error) {
	if _, err := input.Entry.Day(); err != nil {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidDate,
			"entry date must be a valid YYYY-MM-DD date",
			domainerror.ErrInvalidDate,
		)
	}
	for _, segment := range input.Entry.Segments {
		if segment.Value.IsNegative() {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeInvalidAmount,
				"segment values must not be negative",
				domainerror.ErrInvalidAmount,
			)
		}
	}

	entry, err := uc.store.UpdateDayEntry(ctx, input.Entry)
	if err != nil {
		return nil, err
	}
	return &UpdateDayOutput{Entry: entry}, nil
}
