package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// GoalModel represents the goals table. Each user has at most one row.
type GoalModel struct {
	UserID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DailyGoal   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	MonthlyGoal decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ActiveDays  pq.BoolArray    `gorm:"type:boolean[];not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	goal := &entity.Goal{
		DailyGoal:   m.DailyGoal,
		MonthlyGoal: m.MonthlyGoal,
	}
	for i := 0; i < len(goal.ActiveDays) && i < len(m.ActiveDays); i++ {
		goal.ActiveDays[i] = m.ActiveDays[i]
	}
	return goal
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(userID uuid.UUID, goal *entity.Goal) *GoalModel {
	days := make(pq.BoolArray, len(goal.ActiveDays))
	for i, d := range goal.ActiveDays {
		days[i] = d
	}
	return &GoalModel{
		UserID:      userID,
		DailyGoal:   goal.DailyGoal,
		MonthlyGoal: goal.MonthlyGoal,
		ActiveDays:  days,
	}
}
