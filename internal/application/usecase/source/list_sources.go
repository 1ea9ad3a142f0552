// Package source contains income source catalog use cases.
package source

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
)

// ListSourcesOutput represents the output of listing the source catalog.
type ListSourcesOutput struct {
	Sources []entity.IncomeSource
}

// ListSourcesUseCase returns the income source catalog.
type ListSourcesUseCase struct {
	store adapter.DataStore
}

// NewListSourcesUseCase creates a new ListSourcesUseCase instance.
func NewListSourcesUseCase(store adapter.DataStore) *ListSourcesUseCase {
	return &ListSourcesUseCase{store: store}
}

// Execute fetches the catalog, seeding defaults on first read.
func (uc *ListSourcesUseCase) Execute(ctx context.Context) (*ListSourcesOutput, error) {
	sources, err := uc.store.GetIncomeSources(ctx)
	if err != nil {
		return nil, err
	}
	return &ListSourcesOutput{Sources: sources}, nil
}
