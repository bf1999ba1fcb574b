// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package marathon

// Preset is a named viewing budget.
type Preset struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

// Presets returns the preset budgets, shortest first.
func Presets() []Preset {
	return []Preset{
		{Name: "afternoon", Minutes: 240},
		{Name: "evening", Minutes: 360},
		{Name: "weekend", Minutes: 720},
		{Name: "full_day", Minutes: 960},
	}
}
