package dto

import (
	"github.com/bossbitch/backend/internal/domain/entity"
)

// AddSourceRequest represents the request body for adding a catalog
// source.
type AddSourceRequest struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// ToIncomeSource converts the request to a domain IncomeSource template.
func (r AddSourceRequest) ToIncomeSource() entity.IncomeSource {
	return entity.IncomeSource{
		ID:    r.ID,
		Name:  r.Name,
		Color: r.Color,
	}
}

// UpdateSourceRequest represents the request body for renaming or
// recoloring a source. ApplyEverywhere rewrites historical entries too.
type UpdateSourceRequest struct {
	Name            *string `json:"name"`
	Color           *string `json:"color"`
	ApplyEverywhere bool    `json:"applyEverywhere"`
}

// ToPatch converts the request to a domain IncomeSourcePatch.
func (r UpdateSourceRequest) ToPatch() entity.IncomeSourcePatch {
	return entity.IncomeSourcePatch{
		Name:  r.Name,
		Color: r.Color,
	}
}

// SourceListResponse represents the source catalog in API responses.
type SourceListResponse struct {
	Sources []SegmentPayload `json:"sources"`
}

// UpdateSourceResponse represents the result of a source update.
// DaysTouched is zero unless the update was applied everywhere.
type UpdateSourceResponse struct {
	Sources     []SegmentPayload `json:"sources"`
	DaysTouched int              `json:"daysTouched"`
}

// ToSourceListResponse converts a catalog to its DTO.
func ToSourceListResponse(sources []entity.IncomeSource) SourceListResponse {
	return SourceListResponse{Sources: toSegmentPayloads(sources)}
}
