// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package marathon

import (
	"fmt"

	"github.com/tomtom215/cinemarathon/internal/models"
)

const (
	excellentRating   = 8.0
	excellentAvgFloor = 7.5
)

// Analyze summarizes a plan.
func Analyze(plan models.Plan) models.Report {
	utilization := 0.0
	if plan.Budget > 0 {
		utilization = float64(plan.TotalDuration) / float64(plan.Budget)
	}

	excellent := 0
	for i := range plan.Movies {
		if plan.Movies[i].Rating >= excellentRating {
			excellent++
		}
	}

	quality := models.QualityGood
	if plan.AverageRating >= excellentAvgFloor {
		quality = models.QualityExcellent
	}

	return models.Report{
		TimeUtilization:    utilization,
		UtilizationPercent: fmt.Sprintf("%.1f%%", utilization*100),
		ExcellentCount:     excellent,
		FreeTime:           FormatMinutes(plan.Budget - plan.TotalDuration),
		Quality:            quality,
	}
}
