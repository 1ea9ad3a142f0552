// Package preference contains display preference use cases.
package preference

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
)

// UpdatePreferencesInput represents the input for a preferences update.
type UpdatePreferencesInput struct {
	Patch entity.PreferencesPatch
}

// UpdatePreferencesOutput represents the output of a preferences update.
type UpdatePreferencesOutput struct {
	Preferences *entity.Preferences
}

// UpdatePreferencesUseCase applies a partial preferences update.
type UpdatePreferencesUseCase struct {
	store adapter.DataStore
}

// NewUpdatePreferencesUseCase creates a new UpdatePreferencesUseCase instance.
func NewUpdatePreferencesUseCase(store adapter.DataStore) *UpdatePreferencesUseCase {
	return &UpdatePreferencesUseCase{store: store}
}

// Execute applies the patch and returns the updated preferences.
func (uc *UpdatePreferencesUseCase) Execute(ctx context.Context, input UpdatePreferencesInput) (*UpdatePreferencesOutput, error) {
	prefs, err := uc.store.UpdatePreferences(ctx, input.Patch)
	if err != nil {
		return nil, err
	}
	return &UpdatePreferencesOutput{Preferences: prefs}, nil
}
