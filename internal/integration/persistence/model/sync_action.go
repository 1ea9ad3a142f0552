package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// SyncActionModel represents the sync_queue table. The auto-incremented
// Seq column preserves enqueue order across restarts.
type SyncActionModel struct {
	Seq       int64           `gorm:"primaryKey;autoIncrement"`
	ID        uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Timestamp time.Time       `gorm:"not null"`
	Type      string          `gorm:"type:varchar(20);not null"`
	Path      string          `gorm:"type:varchar(100);not null"`
	Data      json.RawMessage `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SyncActionModel.
func (SyncActionModel) TableName() string {
	return "sync_queue"
}

// ToEntity converts a SyncActionModel to a domain SyncAction entity.
func (m *SyncActionModel) ToEntity() *entity.SyncAction {
	return &entity.SyncAction{
		ID:        m.ID,
		Timestamp: m.Timestamp,
		Type:      entity.SyncActionType(m.Type),
		Path:      m.Path,
		Data:      m.Data,
	}
}

// SyncActionFromEntity creates a SyncActionModel from a domain SyncAction entity.
func SyncActionFromEntity(action *entity.SyncAction) *SyncActionModel {
	return &SyncActionModel{
		ID:        action.ID,
		Timestamp: action.Timestamp,
		Type:      string(action.Type),
		Path:      action.Path,
		Data:      action.Data,
	}
}
