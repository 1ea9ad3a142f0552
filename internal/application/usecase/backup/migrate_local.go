// Package backup contains data export, import and migration use cases.
package backup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bossbitch/backend/internal/application/syncstore"
	domainerror "github.com/bossbitch/backend/internal/domain/error"
)

// MigrateLocalOutput represents the output of a local-to-remote
// migration.
type MigrateLocalOutput struct {
	DailyEntries int
	Sources      int
}

// MigrateLocalUseCase moves data collected while anonymous into the
// signed-in user's remote store: export local, import remote, then
// clear local so the device starts following the account. The local
// store is only cleared after the remote import succeeded.
type MigrateLocalUseCase struct {
	store *syncstore.Store
}

// NewMigrateLocalUseCase creates a new MigrateLocalUseCase instance.
func NewMigrateLocalUseCase(store *syncstore.Store) *MigrateLocalUseCase {
	return &MigrateLocalUseCase{store: store}
}

// Execute runs the migration.
func (uc *MigrateLocalUseCase) Execute(ctx context.Context) (*MigrateLocalOutput, error) {
	remote, ok := uc.store.Remote()
	if !ok {
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeMigrationRequiresAuth,
			"sign in before migrating local data",
			domainerror.ErrMigrationRequiresAuth,
		)
	}

	snapshot, err := uc.store.Local().ExportData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export local data: %w", err)
	}

	if err := remote.ImportData(ctx, snapshot); err != nil {
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeImportFailed,
			"failed to import local data into account",
			err,
		)
	}

	if err := uc.store.Local().ClearAllData(ctx); err != nil {
		// Remote now holds the data; a lingering local copy is just noise.
		slog.Warn("Failed to clear local data after migration", "error", err)
	}

	slog.Info("Local data migrated to account",
		"dailyEntries", len(snapshot.Data.DailyEntries),
		"sources", len(snapshot.Data.IncomeSources),
	)

	return &MigrateLocalOutput{
		DailyEntries: len(snapshot.Data.DailyEntries),
		Sources:      len(snapshot.Data.IncomeSources),
	}, nil
}
