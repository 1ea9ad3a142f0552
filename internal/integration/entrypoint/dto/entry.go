package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bossbitch/backend/internal/domain/entity"
)

// SegmentPayload represents one income segment in requests and responses.
type SegmentPayload struct {
	ID    string          `json:"id" binding:"required"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// ToIncomeSource converts the payload to a domain IncomeSource.
func (p SegmentPayload) ToIncomeSource() entity.IncomeSource {
	return entity.IncomeSource{
		ID:    p.ID,
		Name:  p.Name,
		Value: p.Value,
		Color: p.Color,
	}
}

// AddIncomeRequest represents the request body for recording income.
type AddIncomeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Source SegmentPayload  `json:"source" binding:"required"`
}

// UpdateDayRequest represents the request body for replacing one day's
// entry. An empty segment list deletes the day.
type UpdateDayRequest struct {
	Segments []SegmentPayload `json:"segments"`
}

// ToDailyEntry converts the request to a domain DailyEntry for the
// given date key.
func (r UpdateDayRequest) ToDailyEntry(dateKey string) *entity.DailyEntry {
	segments := make([]entity.IncomeSource, len(r.Segments))
	for i, segment := range r.Segments {
		segments[i] = segment.ToIncomeSource()
	}
	return &entity.DailyEntry{
		Date:     dateKey,
		Progress: decimal.Zero,
		Segments: segments,
	}
}

// DailyEntryResponse represents one day's entry in API responses.
type DailyEntryResponse struct {
	Date     string           `json:"date"`
	Progress decimal.Decimal  `json:"progress"`
	Segments []SegmentPayload `json:"segments"`
}

// DailyEntryListResponse represents a list of daily entries.
type DailyEntryListResponse struct {
	Entries []DailyEntryResponse `json:"entries"`
}

// MonthlyEntryResponse represents one month's aggregate in API responses.
type MonthlyEntryResponse struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	MonthKey string           `json:"monthKey"`
	Progress decimal.Decimal  `json:"progress"`
	Segments []SegmentPayload `json:"segments"`
}

// MonthlyEntryListResponse represents a list of monthly aggregates.
type MonthlyEntryListResponse struct {
	Entries []MonthlyEntryResponse `json:"entries"`
}

// ToDailyEntryResponse converts a domain DailyEntry to its DTO.
func ToDailyEntryResponse(entry *entity.DailyEntry) DailyEntryResponse {
	return DailyEntryResponse{
		Date:     entry.Date,
		Progress: entry.Progress,
		Segments: toSegmentPayloads(entry.Segments),
	}
}

// ToDailyEntryListResponse converts a list of daily entries to its DTO.
func ToDailyEntryListResponse(entries []*entity.DailyEntry) DailyEntryListResponse {
	response := DailyEntryListResponse{
		Entries: make([]DailyEntryResponse, len(entries)),
	}
	for i, entry := range entries {
		response.Entries[i] = ToDailyEntryResponse(entry)
	}
	return response
}

// ToMonthlyEntryResponse converts a domain MonthlyEntry to its DTO.
func ToMonthlyEntryResponse(entry *entity.MonthlyEntry) MonthlyEntryResponse {
	return MonthlyEntryResponse{
		Year:     entry.Year,
		Month:    int(entry.Month),
		MonthKey: entry.MonthKey,
		Progress: entry.Progress,
		Segments: toSegmentPayloads(entry.Segments),
	}
}

// ToMonthlyEntryListResponse converts a list of monthly aggregates to
// its DTO.
func ToMonthlyEntryListResponse(entries []*entity.MonthlyEntry) MonthlyEntryListResponse {
	response := MonthlyEntryListResponse{
		Entries: make([]MonthlyEntryResponse, len(entries)),
	}
	for i, entry := range entries {
		response.Entries[i] = ToMonthlyEntryResponse(entry)
	}
	return response
}

func toSegmentPayloads(segments []entity.IncomeSource) []SegmentPayload {
	payloads := make([]SegmentPayload, len(segments))
	for i, segment := range segments {
		payloads[i] = SegmentPayload{
			ID:    segment.ID,
			Name:  segment.Name,
			Value: segment.Value,
			Color: segment.Color,
		}
	}
	return payloads
}
