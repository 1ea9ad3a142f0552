// Package backup contains data export, import and migration use cases.
package backup

import (
	"context"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
)

// ExportDataOutput represents the output of a data export.
type ExportDataOutput struct {
	Snapshot *entity.Snapshot
}

// ExportDataUseCase produces a versioned snapshot of the full data set.
type ExportDataUseCase struct {
	store adapter.DataStore
}

// NewExportDataUseCase creates a new ExportDataUseCase instance.
func NewExportDataUseCase(store adapter.DataStore) *ExportDataUseCase {
	return &ExportDataUseCase{store: store}
}

// Execute exports the active backend's data set.
func (uc *ExportDataUseCase) Execute(ctx context.Context) (*ExportDataOutput, error) {
	snapshot, err := uc.store.ExportData(ctx)
	if err != nil {
		return nil, err
	}
	return &ExportDataOutput{Snapshot: snapshot}, nil
}
