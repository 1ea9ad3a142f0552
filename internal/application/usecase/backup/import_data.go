// Package backup contains data export, import and migration use cases.
package backup

import (
	"context"
	"errors"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// ImportDataInput represents the input for a data import.
type ImportDataInput struct {
	Snapshot *entity.Snapshot
}

// ImportDataUseCase restores a snapshot, replacing all existing data.
type ImportDataUseCase struct {
	store adapter.DataStore
}

// NewImportDataUseCase creates a new ImportDataUseCase instance.
func NewImportDataUseCase(store adapter.DataStore) *ImportDataUseCase {
	return &ImportDataUseCase{store: store}
}

// Execute validates and imports the snapshot. Existing data is only
// cleared once validation has passed.
func (uc *ImportDataUseCase) Execute(ctx context.Context, input ImportDataInput) error {
	err := uc.store.ImportData(ctx, input.Snapshot)
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, entity.ErrUnsupportedSnapshotVersion):
		return domainerror.NewBackupError(
			domainerror.ErrCodeUnsupportedVersion,
			"unsupported snapshot version",
			err,
		)
	case errors.Is(err, entity.ErrMalformedSnapshot):
		return domainerror.NewBackupError(
			domainerror.ErrCodeMalformedSnapshot,
			"malformed snapshot",
			err,
		)
	default:
		return domainerror.NewBackupError(
			domainerror.ErrCodeImportFailed,
			"failed to import data",
			err,
		)
	}
}
