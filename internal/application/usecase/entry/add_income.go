// Package entry contains daily and monthly income entry use cases.
package entry

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// AddIncomeInput represents the input for recording income on a day.
type AddIncomeInput struct {
	Date   time.Time
	Amount decimal.Decimal
	Source entity.IncomeSource
}

// AddIncomeOutput represents the output of recording income.
type AddIncomeOutput struct {
	Entry *entity.DailyEntry
}

// AddIncomeUseCase records an income amount against a day and source.
type AddIncomeUseCase struct {
	store adapter.DataStore
}

// NewAddIncomeUseCase creates a new AddIncomeUseCase instance.
func NewAddIncomeUseCase(store adapter.DataStore) *AddIncomeUseCase {
	return &AddIncomeUseCase{store: store}
}

// Execute validates the input and adds the income. The amount must be
// positive and the source must carry an id.
func (uc *AddIncomeUseCase) Execute(ctx context.Context, input AddIncomeInput) (*AddIncomeOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidAmount,
			"income amount must be positive",
			domainerror.ErrInvalidAmount,
		)
	}
	if strings.TrimSpace(input.Source.ID) == "" {
		return nil, domainerror.NewSourceError(
			domainerror.ErrCodeInvalidSource,
			"income source id is required",
			domainerror.ErrInvalidSource,
		)
	}

	entry, err := uc.store.AddIncomeToDay(ctx, input.Date, input.Amount, input.Source)
	if err != nil {
		return nil, err
	}
	return &AddIncomeOutput{Entry: entry}, nil
}
