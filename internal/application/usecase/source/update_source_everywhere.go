// Package source contains income source catalog use cases.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// fanOutMonths is how far back the fan-out rewrites history.
const fanOutMonths = 12

// UpdateSourceEverywhereInput represents the input for a fan-out source
// update.
type UpdateSourceEverywhereInput struct {
	ID    string
	Patch entity.IncomeSourcePatch
}

// UpdateSourceEverywhereOutput represents the output of a fan-out
// source update.
type UpdateSourceEverywhereOutput struct {
	Sources     []entity.IncomeSource
	DaysTouched int
}

// UpdateSourceEverywhereUseCase renames or recolors a source in the
// catalog and in every daily entry of the trailing twelve months.
// Rewriting the daily entries rebuilds the affected monthly aggregates,
// so the new name and color propagate there too.
type UpdateSourceEverywhereUseCase struct {
	store adapter.DataStore
	now   func() time.Time
}

// NewUpdateSourceEverywhereUseCase creates a new
// UpdateSourceEverywhereUseCase instance.
func NewUpdateSourceEverywhereUseCase(store adapter.DataStore) *UpdateSourceEverywhereUseCase {
	return &UpdateSourceEverywhereUseCase{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Useful in tests.
func (uc *UpdateSourceEverywhereUseCase) WithClock(now func() time.Time) *UpdateSourceEverywhereUseCase {
	uc.now = now
	return uc
}

// Execute updates the catalog first, then rewrites matching segments in
// the trailing window's daily entries.
func (uc *UpdateSourceEverywhereUseCase) Execute(ctx context.Context, input UpdateSourceEverywhereInput) (*UpdateSourceEverywhereOutput, error) {
	sources, err := uc.store.UpdateIncomeSource(ctx, input.ID, input.Patch)
	if err != nil {
		if errors.Is(err, domainerror.ErrSourceNotFound) {
			return nil, domainerror.NewSourceError(
				domainerror.ErrCodeSourceNotFound,
				"income source not found: "+input.ID,
				err,
			)
		}
		return nil, err
	}

	today := uc.now()
	start := today.AddDate(0, -fanOutMonths, 0)
	entries, err := uc.store.GetDailyEntries(ctx, start, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for fan-out: %w", err)
	}

	touched := 0
	for _, dayEntry := range entries {
		changed := false
		for i := range dayEntry.Segments {
			if dayEntry.Segments[i].ID != input.ID {
				continue
			}
			dayEntry.Segments[i].Apply(input.Patch)
			changed = true
		}
		if !changed {
			continue
		}
		if _, err := uc.store.UpdateDayEntry(ctx, dayEntry); err != nil {
			return nil, fmt.Errorf("failed to rewrite entry %s: %w", dayEntry.Date, err)
		}
		touched++
	}

	return &UpdateSourceEverywhereOutput{
		Sources:     sources,
		DaysTouched: touched,
	}, nil
}
