// Package entry contains daily and monthly income entry use cases.
package entry

import (
	"context"
	"time"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// ListDaysInput represents the input for listing entries in a date range.
type ListDaysInput struct {
	Start time.Time
	End   time.Time
}

// ListDaysOutput represents the output of listing entries.
type ListDaysOutput struct {
	Entries []*entity.DailyEntry
}

// ListDaysUseCase returns the entries within a date range.
type ListDaysUseCase struct {
	store adapter.DataStore
}

// NewListDaysUseCase creates a new ListDaysUseCase instance.
func NewListDaysUseCase(store adapter.DataStore) *ListDaysUseCase {
	return &ListDaysUseCase{store: store}
}

// Execute lists existing entries between start and end inclusive.
func (uc *ListDaysUseCase) Execute(ctx context.Context, input ListDaysInput) (*ListDaysOutput, error) {
	if input.End.Before(input.Start) {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidRange,
			"end date must not precede start date",
			domainerror.ErrInvalidRange,
		)
	}

	entries, err := uc.store.GetDailyEntries(ctx, input.Start, input.End)
	if err != nil {
		return nil, err
	}
	return &ListDaysOutput{Entries: entries}, nil
}
