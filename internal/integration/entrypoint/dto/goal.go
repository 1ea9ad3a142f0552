package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// UpdateGoalsRequest represents the request body for a goal
// configuration update. Omitted fields are left unchanged.
type UpdateGoalsRequest struct {
	DailyGoal   *decimal.Decimal `json:"dailyGoal,omitempty"`
	MonthlyGoal *decimal.Decimal `json:"monthlyGoal,omitempty"`
	ActiveDays  *[7]bool         `json:"activeDays,omitempty"`
}

// ToGoalPatch converts the request to a domain patch.
func (r UpdateGoalsRequest) ToGoalPatch() entity.GoalPatch {
	return entity.GoalPatch{
		DailyGoal:   r.DailyGoal,
		MonthlyGoal: r.MonthlyGoal,
		ActiveDays:  r.ActiveDays,
	}
}

// GoalsResponse represents the goal configuration in API responses.
// ActiveDays is indexed by weekday, Sunday first.
type GoalsResponse struct {
	DailyGoal   decimal.Decimal `json:"dailyGoal"`
	MonthlyGoal decimal.Decimal `json:"monthlyGoal"`
	ActiveDays  [7]bool         `json:"activeDays"`
}

// ToGoalsResponse converts a domain Goal entity to a GoalsResponse DTO.
func ToGoalsResponse(goal *entity.Goal) GoalsResponse {
	return GoalsResponse{
		DailyGoal:   goal.DailyGoal,
		MonthlyGoal: goal.MonthlyGoal,
		ActiveDays:  goal.ActiveDays,
	}
}
