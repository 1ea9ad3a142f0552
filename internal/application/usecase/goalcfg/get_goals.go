// Package goalcfg contains goal configuration use cases.
package goalcfg

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
)

// GetGoalsOutput represents the output of fetching the goal configuration.
type GetGoalsOutput struct {
	Goals *entity.Goal
}

// GetGoalsUseCase returns the user's goal configuration.
type GetGoalsUseCase struct {
	store adapter.DataStore
}

// NewGetGoalsUseCase creates a new GetGoalsUseCase instance.
func NewGetGoalsUseCase(store adapter.DataStore) *GetGoalsUseCase {
	return &GetGoalsUseCase{store: store}
}

// Execute fetches the goal configuration, defaults included.
func (uc *GetGoalsUseCase) Execute(ctx context.Context) (*GetGoalsOutput, error) {
	goals, err := uc.store.GetGoals(ctx)
	if err != nil {
		return nil, err
	}
	return &GetGoalsOutput{Goals: goals}, nil
}
