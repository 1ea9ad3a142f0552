package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// MonthlyEntryModel represents the monthly_entries table holding
// derived per-month aggregates.
type MonthlyEntryModel struct {
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MonthKey  string          `gorm:"type:varchar(7);primaryKey"`
	Year      int             `gorm:"not null"`
	Month     int             `gorm:"not null"`
	Progress  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Segments  json.RawMessage `gorm:"type:jsonb;not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MonthlyEntryModel.
func (MonthlyEntryModel) TableName() string {
	return "monthly_entries"
}

// ToEntity converts a MonthlyEntryModel to a domain MonthlyEntry entity.
func (m *MonthlyEntryModel) ToEntity() (*entity.MonthlyEntry, error) {
	var segments []entity.IncomeSource
	if len(m.Segments) > 0 {
		if err := json.Unmarshal(m.Segments, &segments); err != nil {
			return nil, err
		}
	}
	return &entity.MonthlyEntry{
		Year:     m.Year,
		Month:    time.Month(m.Month),
		MonthKey: m.MonthKey,
		Progress: m.Progress,
		Segments: segments,
	}, nil
}

// MonthlyEntryFromEntity creates a MonthlyEntryModel from a domain MonthlyEntry entity.
func MonthlyEntryFromEntity(userID uuid.UUID, entry *entity.MonthlyEntry) (*MonthlyEntryModel, error) {
	segments := entry.Segments
	if segments == nil {
		segments = []entity.IncomeSource{}
	}
	raw, err := json.Marshal(segments)
	if err != nil {
		return nil, err
	}
	return &MonthlyEntryModel{
		UserID:   userID,
		MonthKey: entry.MonthKey,
		Year:     entry.Year,
		Month:    int(entry.Month),
		Progress: entry.Progress,
		Segments: raw,
	}, nil
}
