// Package entry contains daily and monthly income entry use cases.
package entry

import (
	"context"
	"time"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// ListMonthsInput represents the input for listing monthly aggregates.
type ListMonthsInput struct {
	StartYear  int
	StartMonth time.Month
	EndYear    int
	EndMonth   time.Month
}

// ListMonthsOutput represents the output of listing monthly aggregates.
type ListMonthsOutput struct {
	Entries []*entity.MonthlyEntry
}

// ListMonthsUseCase returns the aggregates within a month range.
type ListMonthsUseCase struct {
	store adapter.DataStore
}

// NewListMonthsUseCase creates a new ListMonthsUseCase instance.
func NewListMonthsUseCase(store adapter.DataStore) *ListMonthsUseCase {
	return &ListMonthsUseCase{store: store}
}

// Execute lists existing aggregates between the start and end months
// inclusive.
func (uc *ListMonthsUseCase) Execute(ctx context.Context, input ListMonthsInput) (*ListMonthsOutput, error) {
	start := entity.MonthKey(input.StartYear, input.StartMonth)
	end := entity.MonthKey(input.EndYear, input.EndMonth)
	if end < start {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidRange,
			"end month must not precede start month",
			domainerror.ErrInvalidRange,
		)
	}

	entries, err := uc.store.GetMonthlyEntries(ctx, input.StartYear, input.StartMonth, input.EndYear, input.EndMonth)
	if err != nil {
		return nil, err
	}
	return &ListMonthsOutput{Entries: entries}, nil
}
