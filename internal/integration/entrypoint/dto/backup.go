package dto

import (
	"github.com/bossbitch/backend/internal/domain/entity"
)

// ExportResponse wraps a full snapshot of the active store. The
// snapshot keeps the entity wire format so an export can be fed back to
// the import endpoint unchanged.
type ExportResponse struct {
	Snapshot *entity.Snapshot `json:"snapshot"`
}

// ImportRequest represents the request body for restoring a snapshot.
type ImportRequest struct {
	Snapshot *entity.Snapshot `json:"snapshot" binding:"required"`
}

// MigrateResponse reports what the local-to-remote migration moved.
type MigrateResponse struct {
	DailyEntries int    `json:"dailyEntries"`
	Sources      int    `json:"sources"`
	Message      string `json:"message"`
}
