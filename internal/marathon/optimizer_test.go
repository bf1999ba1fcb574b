// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package marathon

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/cinemarathon/internal/models"
)

var testTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func movie(id int64, rating float64, duration int) models.EnrichedMovie {
	return models.NewEnrichedMovie(models.Candidate{
		ID:          id,
		Title:       fmt.Sprintf("Movie %d", id),
		Rating:      rating,
		Duration:    duration,
		ReleaseDate: "2000-01-01",
	}, nil, testTime)
}

func withRelease(m models.EnrichedMovie, date string) models.EnrichedMovie {
	m.ReleaseDate = date
	return m
}

func withGenres(m models.EnrichedMovie, genres ...string) models.EnrichedMovie {
	m.Genres = genres
	return m
}

func selectedIDs(p models.Plan) []int64 {
	out := make([]int64, len(p.Movies))
	for i := range p.Movies {
		out[i] = p.Movies[i].ID
	}
	return out
}

func totalRating(p models.Plan) float64 {
	sum := 0.0
	for i := range p.Movies {
		sum += p.Movies[i].Rating
	}
	return sum
}

func TestPlan_PrefersTwoShorterOverOneLong(t *testing.T) {
	t.Parallel()

	movies := []models.EnrichedMovie{movie(1, 8, 120), movie(2, 7, 60), movie(3, 9, 180)}
	plan := Plan(movies, 180, DefaultOptions())

	if got := totalRating(plan); got != 15 {
		t.Fatalf("total rating = %v, want 15 (ids %v)", got, selectedIDs(plan))
	}
	// value-density order: 7/60 before 8/120
	if want := []int64{2, 1}; !reflect.DeepEqual(selectedIDs(plan), want) {
		t.Errorf("selection = %v, want %v", selectedIDs(plan), want)
	}
	if plan.TotalDuration != 180 || plan.Remaining != 0 || plan.Count != 2 {
		t.Errorf("plan = %+v", plan)
	}
	if plan.AverageRating != 7.5 {
		t.Errorf("AverageRating = %v, want 7.5", plan.AverageRating)
	}
	want := `Marathon of 2 movie(s) [3h 0m] with an average rating of 7.5★: "Movie 2", "Movie 1"`
	if plan.Description != want {
		t.Errorf("Description = %q\nwant %q", plan.Description, want)
	}
}

func TestPlan_EmptyInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		movies []models.EnrichedMovie
		budget int
	}{
		{"no candidates", nil, 300},
		{"zero budget", []models.EnrichedMovie{movie(1, 8, 90)}, 0},
		{"negative budget", []models.EnrichedMovie{movie(1, 8, 90)}, -10},
		{"single too long", []models.EnrichedMovie{movie(1, 9, 200)}, 120},
		{"all below min rating", []models.EnrichedMovie{movie(1, 5, 90)}, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			plan := Plan(tt.movies, tt.budget, DefaultOptions())
			if !plan.Empty() || plan.TotalDuration != 0 || plan.AverageRating != 0 {
				t.Errorf("expected empty plan, got %+v", plan)
			}
			if plan.Remaining != tt.budget || plan.Budget != tt.budget {
				t.Errorf("Remaining = %d, Budget = %d, want %d", plan.Remaining, plan.Budget, tt.budget)
			}
			if plan.Description != NoMatchDescription {
				t.Errorf("Description = %q", plan.Description)
			}
			if plan.Movies == nil {
				t.Error("Movies should be an empty slice, not nil")
			}
		})
	}
}

func TestPlan_DropsInvalidCandidates(t *testing.T) {
	t.Parallel()

	noTitle := movie(2, 9, 60)
	noTitle.Title = ""
	nanRating := movie(3, 9, 60)
	nanRating.Rating = math.NaN()

	movies := []models.EnrichedMovie{movie(1, 7, 60), noTitle, nanRating, movie(4, 9, 0), movie(0, 9, 60)}
	plan := Plan(movies, 600, DefaultOptions())
	if want := []int64{1}; !reflect.DeepEqual(selectedIDs(plan), want) {
		t.Errorf("selection = %v, want %v", selectedIDs(plan), want)
	}
}

func TestPlan_TieBreakPrefersEarlierCandidate(t *testing.T) {
	t.Parallel()

	// identical density and rating: only one fits, the first wins
	movies := []models.EnrichedMovie{movie(1, 8, 100), movie(2, 8, 100), movie(3, 8, 100)}
	plan := Plan(movies, 150, DefaultOptions())
	if want := []int64{1}; !reflect.DeepEqual(selectedIDs(plan), want) {
		t.Errorf("selection = %v, want %v", selectedIDs(plan), want)
	}
}

func TestPlan_PreferRecentBreaksDensityTies(t *testing.T) {
	t.Parallel()

	movies := []models.EnrichedMovie{
		withRelease(movie(1, 8, 100), "1990-05-01"),
		withRelease(movie(2, 8, 100), "2021-05-01"),
		withRelease(movie(3, 8, 100), models.UnknownReleaseDate),
	}

	opts := DefaultOptions()
	opts.PreferRecent = true
	plan := Plan(movies, 100, opts)
	if want := []int64{2}; !reflect.DeepEqual(selectedIDs(plan), want) {
		t.Errorf("selection = %v, want %v", selectedIDs(plan), want)
	}

	plan = Plan(movies, 100, DefaultOptions())
	if want := []int64{1}; !reflect.DeepEqual(selectedIDs(plan), want) {
		t.Errorf("without preference selection = %v, want %v", selectedIDs(plan), want)
	}
}

func TestPlan_MaxCountBoundsInputAndOutput(t *testing.T) {
	t.Parallel()

	movies := make([]models.EnrichedMovie, 0, 20)
	for i := 1; i <= 20; i++ {
		movies = append(movies, movie(int64(i), 7, 30+i))
	}

	opts := DefaultOptions()
	opts.MaxCount = 3
	plan := Plan(movies, 10000, opts)
	if plan.Count != 3 {
		t.Errorf("Count = %d, want 3", plan.Count)
	}
	// the three densest are the three shortest
	if want := []int64{1, 2, 3}; !reflect.DeepEqual(selectedIDs(plan), want) {
		t.Errorf("selection = %v, want %v", selectedIDs(plan), want)
	}
}

func TestPlan_SafetyCap(t *testing.T) {
	t.Parallel()

	movies := make([]models.EnrichedMovie, 0, 100)
	for i := 1; i <= 100; i++ {
		movies = append(movies, movie(int64(i), 7, 10))
	}
	opts := Options{MinRating: 6, MaxCount: 500, SafetyCap: 60}
	plan := Plan(movies, 100000, opts)
	if plan.Count != 60 {
		t.Errorf("Count = %d, want 60 (safety cap)", plan.Count)
	}
}

func TestPlan_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(14)
		movies := make([]models.EnrichedMovie, n)
		for i := range movies {
			rating := math.Round(rng.Float64()*100) / 10
			movies[i] = movie(int64(i+1), rating, 60+rng.Intn(120))
		}
		budget := rng.Intn(600)
		opts := Options{MinRating: rng.Float64() * 8, MaxCount: 1 + rng.Intn(12)}

		plan := Plan(movies, budget, opts)

		sum := 0
		for _, m := range plan.Movies {
			sum += m.Duration
			if m.Rating < opts.MinRating {
				t.Fatalf("trial %d: rating %v below min %v", trial, m.Rating, opts.MinRating)
			}
		}
		if budget > 0 && sum > budget {
			t.Fatalf("trial %d: duration %d exceeds budget %d", trial, sum, budget)
		}
		if sum != plan.TotalDuration {
			t.Fatalf("trial %d: TotalDuration %d != sum %d", trial, plan.TotalDuration, sum)
		}
		if plan.Count > opts.MaxCount {
			t.Fatalf("trial %d: count %d exceeds max %d", trial, plan.Count, opts.MaxCount)
		}

		again := Plan(movies, budget, opts)
		if !reflect.DeepEqual(selectedIDs(plan), selectedIDs(again)) {
			t.Fatalf("trial %d: non-deterministic selection", trial)
		}

		bigger := Plan(movies, budget+rng.Intn(200)+1, opts)
		if totalRating(bigger)+1e-9 < totalRating(plan) {
			t.Fatalf("trial %d: larger budget lowered total rating %v -> %v", trial, totalRating(plan), totalRating(bigger))
		}
	}
}

func TestPlan_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		n := 1 + rng.Intn(10)
		movies := make([]models.EnrichedMovie, n)
		for i := range movies {
			movies[i] = movie(int64(i+1), float64(6+rng.Intn(5)), 30+rng.Intn(150))
		}
		budget := 60 + rng.Intn(400)

		plan := Plan(movies, budget, Options{MinRating: 0, MaxCount: n})

		best := 0.0
		for mask := 0; mask < 1<<n; mask++ {
			d, r := 0, 0.0
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 {
					d += movies[i].Duration
					r += movies[i].Rating
				}
			}
			if d <= budget && r > best {
				best = r
			}
		}
		if math.Abs(totalRating(plan)-best) > 1e-9 {
			t.Fatalf("trial %d: optimizer %v, brute force %v", trial, totalRating(plan), best)
		}
	}
}

func TestPlanThematic(t *testing.T) {
	t.Parallel()

	movies := []models.EnrichedMovie{
		withGenres(movie(1, 8, 100), "Horror"),
		withGenres(movie(2, 9, 100), "Comedy", "Drama"),
		withGenres(movie(3, 7, 100), "Science Fiction"),
		movie(4, 9, 100),
	}
	plan := PlanThematic(movies, 1000, []string{"drama", "Horror"}, DefaultOptions())

	got := map[int64]bool{}
	for _, id := range selectedIDs(plan) {
		got[id] = true
	}
	if len(got) != 2 || !got[1] || !got[2] {
		t.Errorf("selection = %v, want movies 1 and 2", selectedIDs(plan))
	}
}

func TestPlanDecade(t *testing.T) {
	t.Parallel()

	movies := []models.EnrichedMovie{
		withRelease(movie(1, 8, 100), "1989-12-31"),
		withRelease(movie(2, 8, 100), "1990-01-01"),
		withRelease(movie(3, 8, 100), "1999-12-31"),
		withRelease(movie(4, 8, 100), "2000-01-01"),
		withRelease(movie(5, 8, 100), models.UnknownReleaseDate),
	}
	plan := PlanDecade(movies, 1000, 1990, DefaultOptions())
	if want := []int64{2, 3}; !reflect.DeepEqual(selectedIDs(plan), want) {
		t.Errorf("selection = %v, want %v", selectedIDs(plan), want)
	}
}

func TestFormatMinutes(t *testing.T) {
	t.Parallel()

	tests := map[int]string{0: "0h 0m", 59: "0h 59m", 60: "1h 0m", 135: "2h 15m", 960: "16h 0m"}
	for in, want := range tests {
		if got := FormatMinutes(in); got != want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}
