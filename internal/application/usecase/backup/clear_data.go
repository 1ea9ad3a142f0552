// Package backup contains data export, import and migration use cases.
package backup

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
)

// ClearDataUseCase resets the active backend to its default state.
type ClearDataUseCase struct {
	store adapter.DataStore
}

// NewClearDataUseCase creates a new ClearDataUseCase instance.
func NewClearDataUseCase(store adapter.DataStore) *ClearDataUseCase {
	return &ClearDataUseCase{store: store}
}

// Execute clears all stored data.
func (uc *ClearDataUseCase) Execute(ctx context.Context) error {
	return uc.store.ClearAllData(ctx)
}
