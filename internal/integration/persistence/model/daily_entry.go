package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// DailyEntryModel represents the daily_entries table. Segments are stored
// as a JSON document so the breakdown round-trips without a join.
type DailyEntryModel struct {
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date      string          `gorm:"type:varchar(10);primaryKey"`
	Progress  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Segments  json.RawMessage `gorm:"type:jsonb;not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the DailyEntryModel.
func (DailyEntryModel) TableName() string {
	return "daily_entries"
}

// ToEntity converts a DailyEntryModel to a domain DailyEntry entity.
func (m *DailyEntryModel) ToEntity() (*entity.DailyEntry, error) {
	var segments []entity.IncomeSource
	if len(m.Segments) > 0 {
		if err := json.Unmarshal(m.Segments, &segments); err != nil {
			return nil, err
		}
	}
	return &entity.DailyEntry{
		Date:     m.Date,
		Progress: m.Progress,
		Segments: segments,
	}, nil
}

// DailyEntryFromEntity creates a DailyEntryModel from a domain DailyEntry entity.
func DailyEntryFromEntity(userID uuid.UUID, entry *entity.DailyEntry) (*DailyEntryModel, error) {
	segments := entry.Segments
	if segments == nil {
		segments = []entity.IncomeSource{}
	}
	raw, err := json.Marshal(segments)
	if err != nil {
		return nil, err
	}
	return &DailyEntryModel{
		UserID:   userID,
		Date:     entry.Date,
		Progress: entry.Progress,
		Segments: raw,
	}, nil
}
