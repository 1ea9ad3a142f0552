// Package entry contains daily and monthly income entry use cases.
package entry

import (
	"context"
	"time"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
)

// GetDayInput represents the input for fetching one day's entry.
type GetDayInput struct {
	Date time.Time
}

// GetDayOutput represents the output of fetching one day's entry.
// Entry is nil when the day holds no income.
type GetDayOutput struct {
	Entry *entity.DailyEntry
}

// GetDayUseCase returns one day's entry.
type GetDayUseCase struct {
	store adapter.DataStore
}

// NewGetDayUseCase creates a new GetDayUseCase instance.
func NewGetDayUseCase(store adapter.DataStore) *GetDayUseCase {
	return &GetDayUseCase{store: store}
}

// Execute fetches the entry for the given date.
func (uc *GetDayUseCase) Execute(ctx context.Context, input GetDayInput) (*GetDayOutput, error) {
	entry, err := uc.store.GetDailyEntry(ctx, input.Date)
	if err != nil {
		return nil, err
	}
	return &GetDayOutput{Entry: entry}, nil
}
