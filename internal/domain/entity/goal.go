// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// Goal holds the user's earning targets and which weekdays count as
// working days. There is exactly one Goal per user; it is never deleted,
// only updated or reset to defaults.
type Goal struct {
	DailyGoal   decimal.Decimal `json:"dailyGoal"`
	MonthlyGoal decimal.Decimal `json:"monthlyGoal"`
	// ActiveDays is indexed by time.Weekday (Sunday first).
	ActiveDays [7]bool `json:"activeDays"`
}

// DefaultGoal returns the goal configuration a fresh user starts with:
// Monday through Friday active.
func DefaultGoal() *Goal {
	return &Goal{
		DailyGoal:   decimal.NewFromInt(2000),
		MonthlyGoal: decimal.NewFromInt(30000),
		ActiveDays:  [7]bool{false, true, true, true, true, true, false},
	}
}

// GoalPatch is a partial goal update; nil fields are left unchanged.
type GoalPatch struct {
	DailyGoal   *decimal.Decimal
	MonthlyGoal *decimal.Decimal
	ActiveDays  *[7]bool
}

// Apply merges the patch into the goal.
func (g *Goal) Apply(patch GoalPatch) {
	if patch.DailyGoal != nil {
		g.DailyGoal = *patch.DailyGoal
	}
	if patch.MonthlyGoal != nil {
		g.MonthlyGoal = *patch.MonthlyGoal
	}
	if patch.ActiveDays != nil {
		g.ActiveDays = *patch.ActiveDays
	}
}
