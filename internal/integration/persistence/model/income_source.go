package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// IncomeSourceModel represents the income_sources table holding the
// user's configurable source templates.
type IncomeSourceModel struct {
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SourceID  string          `gorm:"type:varchar(100);primaryKey"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Value     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Color     string          `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the IncomeSourceModel.
func (IncomeSourceModel) TableName() string {
	return "income_sources"
}

// ToEntity converts an IncomeSourceModel to a domain IncomeSource entity.
func (m *IncomeSourceModel) ToEntity() entity.IncomeSource {
	return entity.IncomeSource{
		ID:    m.SourceID,
		Name:  m.Name,
		Value: m.Value,
		Color: m.Color,
	}
}

// IncomeSourceFromEntity creates an IncomeSourceModel from a domain IncomeSource entity.
func IncomeSourceFromEntity(userID uuid.UUID, source entity.IncomeSource) *IncomeSourceModel {
	return &IncomeSourceModel{
		UserID:   userID,
		SourceID: source.ID,
		Name:     source.Name,
		Value:    source.Value,
		Color:    source.Color,
	}
}
