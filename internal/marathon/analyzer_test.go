// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package marathon

import (
	"testing"

	"github.com/tomtom215/cinemarathon/internal/models"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	plan := Plan([]models.EnrichedMovie{movie(1, 8.5, 90), movie(2, 7.0, 90)}, 240, DefaultOptions())
	report := Analyze(plan)

	if report.TimeUtilization != 0.75 {
		t.Errorf("TimeUtilization = %v, want 0.75", report.TimeUtilization)
	}
	if report.UtilizationPercent != "75.0%" {
		t.Errorf("UtilizationPercent = %q", report.UtilizationPercent)
	}
	if report.ExcellentCount != 1 {
		t.Errorf("ExcellentCount = %d, want 1", report.ExcellentCount)
	}
	if report.FreeTime != "1h 0m" {
		t.Errorf("FreeTime = %q, want 1h 0m", report.FreeTime)
	}
	if report.Quality != models.QualityExcellent {
		t.Errorf("Quality = %q (avg %v)", report.Quality, plan.AverageRating)
	}
}

func TestAnalyzeGoodQuality(t *testing.T) {
	t.Parallel()

	report := Analyze(Plan([]models.EnrichedMovie{movie(1, 7.4, 100)}, 100, DefaultOptions()))
	if report.Quality != models.QualityGood {
		t.Errorf("Quality = %q, want Good", report.Quality)
	}
	if report.UtilizationPercent != "100.0%" || report.FreeTime != "0h 0m" {
		t.Errorf("report = %+v", report)
	}
}

func TestAnalyzeZeroBudget(t *testing.T) {
	t.Parallel()

	report := Analyze(Plan(nil, 0, DefaultOptions()))
	if report.TimeUtilization != 0 || report.UtilizationPercent != "0.0%" {
		t.Errorf("report = %+v", report)
	}
	if report.ExcellentCount != 0 || report.Quality != models.QualityGood {
		t.Errorf("report = %+v", report)
	}
}

func TestPresets(t *testing.T) {
	t.Parallel()

	want := map[string]int{"afternoon": 240, "evening": 360, "weekend": 720, "full_day": 960}
	presets := Presets()
	if len(presets) != len(want) {
		t.Fatalf("len = %d", len(presets))
	}
	for _, p := range presets {
		if want[p.Name] != p.Minutes {
			t.Errorf("%s = %d, want %d", p.Name, p.Minutes, want[p.Name])
		}
	}
	for i := 1; i < len(presets); i++ {
		if presets[i].Minutes <= presets[i-1].Minutes {
			t.Errorf("presets not ordered shortest first: %v", presets)
		}
	}
}
