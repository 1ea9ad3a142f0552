// Package source contains income source catalog use cases.
package source

import (
	"context"
	"strings"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// AddSourceInput represents the input for adding a catalog source.
type AddSourceInput struct {
	Source entity.IncomeSource
}

// AddSourceOutput represents the output of adding a catalog source.
type AddSourceOutput struct {
	Sources []entity.IncomeSource
}

// AddSourceUseCase adds a source template to the catalog.
type AddSourceUseCase struct {
	store adapter.DataStore
}

// NewAddSourceUseCase creates a new AddSourceUseCase instance.
func NewAddSourceUseCase(store adapter.DataStore) *AddSourceUseCase {
	return &AddSourceUseCase{store: store}
}

// Execute validates and adds the source. Adding an id that already
// exists leaves the catalog unchanged.
func (uc *AddSourceUseCase) Execute(ctx context.Context, input AddSourceInput) (*AddSourceOutput, error) {
	if strings.TrimSpace(input.Source.ID) == "" || strings.TrimSpace(input.Source.Name) == "" {
		return nil, domainerror.NewSourceError(
			domainerror.ErrCodeInvalidSource,
			"income source id and name are required",
			domainerror.ErrInvalidSource,
		)
	}

	sources, err := uc.store.AddIncomeSource(ctx, input.Source)
	if err != nil {
		return nil, err
	}
	return &AddSourceOutput{Sources: sources}, nil
}
