// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// IncomeSource is a named, colored income category. In the catalog its
// Value is always zero; inside a daily or monthly entry's segments the
// Value carries the amount contributed by that source.
type IncomeSource struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// Template returns a catalog copy of the source with a zeroed value.
func (s IncomeSource) Template() IncomeSource {
	return IncomeSource{
		ID:    s.ID,
		Name:  s.Name,
		Value: decimal.Zero,
		Color: s.Color,
	}
}

// DefaultIncomeSources returns the seed catalog a fresh user starts with.
func DefaultIncomeSources() []IncomeSource {
	return []IncomeSource{
		{ID: "freelance", Name: "Freelance", Value: decimal.Zero, Color: "#FF6B6B"},
		{ID: "parttime", Name: "Part Time", Value: decimal.Zero, Color: "#4ECDC4"},
		{ID: "other", Name: "Other", Value: decimal.Zero, Color: "#45B7D1"},
	}
}

// IncomeSourcePatch is a partial source update; nil fields are left
// unchanged. The ID is immutable.
type IncomeSourcePatch struct {
	Name  *string
	Color *string
}

// Apply merges the patch into the source.
func (s *IncomeSource) Apply(patch IncomeSourcePatch) {
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Color != nil {
		s.Color = *patch.Color
	}
}
