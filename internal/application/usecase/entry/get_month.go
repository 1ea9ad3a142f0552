// Package entry contains daily and monthly income entry use cases.
package entry

import (
	"context"
	"time"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
)

// GetMonthInput represents the input for fetching one month's aggregate.
type GetMonthInput struct {
	Year  int
	Month time.Month
}

// GetMonthOutput represents the output of fetching one month's
// aggregate. Entry is nil when the month holds no income.
type GetMonthOutput struct {
	Entry *entity.MonthlyEntry
}

// GetMonthUseCase returns one month's aggregate.
type GetMonthUseCase struct {
	store adapter.DataStore
}

// NewGetMonthUseCase creates a new GetMonthUseCase instance.
func NewGetMonthUseCase(store adapter.DataStore) *GetMonthUseCase {
	return &GetMonthUseCase{store: store}
}

// Execute fetches the aggregate for the given month.
func (uc *GetMonthUseCase) Execute(ctx context.Context, input GetMonthInput) (*GetMonthOutput, error) {
	entry, err := uc.store.GetMonthlyEntry(ctx, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	return &GetMonthOutput{Entry: entry}, nil
}
