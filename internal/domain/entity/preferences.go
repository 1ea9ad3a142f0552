// Package entity defines the core business entities for the domain layer.
package entity

// RingColors holds the colors used for the progress rings and the accent.
type RingColors struct {
	DailyRing   string `json:"dailyRing"`
	MonthlyRing string `json:"monthlyRing"`
	Accent      string `json:"accent"`
}

// Preferences holds per-user display preferences. One instance per user.
type Preferences struct {
	IsDarkMode bool       `json:"isDarkMode"`
	Colors     RingColors `json:"colors"`
}

// DefaultPreferences returns the preferences a fresh user starts with.
func DefaultPreferences() *Preferences {
	return &Preferences{
		IsDarkMode: true,
		Colors: RingColors{
			DailyRing:   "#FF0000",
			MonthlyRing: "#FFD700",
			Accent:      "#7C3AED",
		},
	}
}

// PreferencesPatch is a partial preferences update; nil fields are left
// unchanged. Colors are replaced as a whole, matching the shallow-merge
// update semantics of the settings screen.
type PreferencesPatch struct {
	IsDarkMode *bool
	Colors     *RingColors
}

// Apply merges the patch into the preferences.
func (p *Preferences) Apply(patch PreferencesPatch) {
	if patch.IsDarkMode != nil {
		p.IsDarkMode = *patch.IsDarkMode
	}
	if patch.Colors != nil {
		p.Colors = *patch.Colors
	}
}
