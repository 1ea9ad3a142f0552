// Package goalcfg contains goal configuration use cases.
package goalcfg

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// UpdateGoalsInput represents the input for a goal configuration update.
type UpdateGoalsInput struct {
	Patch entity.GoalPatch
}

// UpdateGoalsOutput represents the output of a goal configuration update.
type UpdateGoalsOutput struct {
	Goals *entity.Goal
}

// UpdateGoalsUseCase applies a partial goal configuration update.
type UpdateGoalsUseCase struct {
	store adapter.DataStore
}

// NewUpdateGoalsUseCase creates a new UpdateGoalsUseCase instance.
func NewUpdateGoalsUseCase(store adapter.DataStore) *UpdateGoalsUseCase {
	return &UpdateGoalsUseCase{store: store}
}

// Execute validates and applies the patch. Goal amounts must not be
// negative.
func (uc *UpdateGoalsUseCase) Execute(ctx context.Context, input UpdateGoalsInput) (*UpdateGoalsOutput, error) {
	if input.Patch.DailyGoal != nil && input.Patch.DailyGoal.IsNegative() {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidAmount,
			"daily goal must not be negative",
			domainerror.ErrInvalidAmount,
		)
	}
	if input.Patch.MonthlyGoal != nil && input.Patch.MonthlyGoal.IsNegative() {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidAmount,
			"monthly goal must not be negative",
			domainerror.ErrInvalidAmount,
		)
	}

	goals, err := uc.store.UpdateGoals(ctx, input.Patch)
	if err != nil {
		return nil, err
	}
	return &UpdateGoalsOutput{Goals: goals}, nil
}
