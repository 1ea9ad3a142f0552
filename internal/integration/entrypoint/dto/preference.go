package dto

import (
	"github.com/bossbitch/backend/internal/domain/entity"
)

// RingColorsPayload represents the progress ring colors.
type RingColorsPayload struct {
	DailyRing   string `json:"dailyRing" binding:"required"`
	MonthlyRing string `json:"monthlyRing" binding:"required"`
	Accent      string `json:"accent" binding:"required"`
}

// UpdatePreferencesRequest represents the request body for a preferences
// update. Omitted fields are left unchanged; colors replace as a whole.
type UpdatePreferencesRequest struct {
	IsDarkMode *bool              `json:"isDarkMode,omitempty"`
	Colors     *RingColorsPayload `json:"colors,omitempty"`
}

// ToPreferencesPatch converts the request to a domain patch.
func (r UpdatePreferencesRequest) ToPreferencesPatch() entity.PreferencesPatch {
	patch := entity.PreferencesPatch{
		IsDarkMode: r.IsDarkMode,
	}
	if r.Colors != nil {
		patch.Colors = &entity.RingColors{
			DailyRing:   r.Colors.DailyRing,
			MonthlyRing: r.Colors.MonthlyRing,
			Accent:      r.Colors.Accent,
		}
	}
	return patch
}

// PreferencesResponse represents the preferences in API responses.
type PreferencesResponse struct {
	IsDarkMode bool              `json:"isDarkMode"`
	Colors     RingColorsPayload `json:"colors"`
}

// ToPreferencesResponse converts a domain Preferences entity to a
// PreferencesResponse DTO.
func ToPreferencesResponse(prefs *entity.Preferences) PreferencesResponse {
	return PreferencesResponse{
		IsDarkMode: prefs.IsDarkMode,
		Colors: RingColorsPayload{
			DailyRing:   prefs.Colors.DailyRing,
			MonthlyRing: prefs.Colors.MonthlyRing,
			Accent:      prefs.Colors.Accent,
		},
	}
}
