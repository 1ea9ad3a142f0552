// Package source contains income source catalog use cases.
package source

import (
	"context"
	"errors"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// UpdateSourceInput represents the input for a catalog source update.
type UpdateSourceInput struct {
	ID    string
	Patch entity.IncomeSourcePatch
}

// UpdateSourceOutput represents the output of a catalog source update.
type UpdateSourceOutput struct {
	Sources []entity.IncomeSource
}

// UpdateSourceUseCase renames or recolors a catalog source. Historical
// entries keep the old name and color; UpdateSourceEverywhereUseCase
// rewrites those too.
type UpdateSourceUseCase struct {
	store adapter.DataStore
}

// NewUpdateSourceUseCase creates a new UpdateSourceUseCase instance.
func NewUpdateSourceUseCase(store adapter.DataStore) *UpdateSourceUseCase {
	return &UpdateSourceUseCase{store: store}
}

// Execute applies the patch to the catalog entry.
func (uc *UpdateSourceUseCase) Execute(ctx context.Context, input UpdateSourceInput) (*UpdateSourceOutput, error) {
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
	return &UpdateSourceOutput{Sources: sources}, nil
}
