// Package preference contains display preference use cases.
package preference

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
)

// GetPreferencesOutput represents the output of fetching preferences.
type GetPreferencesOutput struct {
	Preferences *entity.Preferences
}

// GetPreferencesUseCase returns the user's display preferences.
type GetPreferencesUseCase struct {
	store adapter.DataStore
}

// NewGetPreferencesUseCase creates a new GetPreferencesUseCase instance.
func NewGetPreferencesUseCase(store adapter.DataStore) *GetPreferencesUseCase {
	return &GetPreferencesUseCase{store: store}
}

// Execute fetches the preferences, defaults included.
func (uc *GetPreferencesUseCase) Execute(ctx context.Context) (*GetPreferencesOutput, error) {
	prefs, err := uc.store.GetPreferences(ctx)
	if err != nil {
		return nil, err
	}
	return &GetPreferencesOutput{Preferences: prefs}, nil
}
