package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// PreferencesModel represents the preferences table. Each user has at most one row.
type PreferencesModel struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsDarkMode       bool      `gorm:"not null"`
	DailyRingColor   string    `gorm:"type:varchar(20);not null"`
	MonthlyRingColor string    `gorm:"type:varchar(20);not null"`
	AccentColor      string    `gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the PreferencesModel.
func (PreferencesModel) TableName() string {
	return "preferences"
}

// ToEntity converts a PreferencesModel to a domain Preferences entity.
func (m *PreferencesModel) ToEntity() *entity.Preferences {
	return &entity.Preferences{
		IsDarkMode: m.IsDarkMode,
		Colors: entity.RingColors{
			DailyRing:   m.DailyRingColor,
			MonthlyRing: m.MonthlyRingColor,
			Accent:      m.AccentColor,
		},
	}
}

// PreferencesFromEntity creates a PreferencesModel from a domain Preferences entity.
func PreferencesFromEntity(userID uuid.UUID, prefs *entity.Preferences) *PreferencesModel {
	return &PreferencesModel{
		UserID:           userID,
		IsDarkMode:       prefs.IsDarkMode,
		DailyRingColor:   prefs.Colors.DailyRing,
		MonthlyRingColor: prefs.Colors.MonthlyRing,
		AccentColor:      prefs.Colors.Accent,
	}
}
