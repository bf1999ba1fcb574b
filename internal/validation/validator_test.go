// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return the same non-nil instance")
	}
}

type planRequest struct {
	BudgetMinutes int      `json:"budget_minutes" validate:"required,min=1,max=1440"`
	MinRating     *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Genres        []string `json:"genres" validate:"omitempty,min=1,dive,required,max=50"`
	Decade        int      `json:"decade" validate:"omitempty,min=1900,max=2030,decade"`
	Query         string   `json:"q" validate:"omitempty,max=10"`
	Mode          string   `json:"mode" validate:"omitempty,oneof=fast exact"`
}

func rating(v float64) *float64 { return &v }

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     planRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"valid", planRequest{BudgetMinutes: 240, MinRating: rating(7), Genres: []string{"Drama"}, Decade: 1990}, "", "", ""},
		{"missing budget", planRequest{}, "budget_minutes", "required", "budget_minutes is required"},
		{"budget too large", planRequest{BudgetMinutes: 1441}, "budget_minutes", "max", "budget_minutes must be at most 1440"},
		{"rating too high", planRequest{BudgetMinutes: 60, MinRating: rating(10.5)}, "min_rating", "lte", "min_rating must be less than or equal to 10"},
		{"decade not multiple", planRequest{BudgetMinutes: 60, Decade: 1995}, "decade", "decade", "decade must be a multiple of 10"},
		{"decade too early", planRequest{BudgetMinutes: 60, Decade: 1800}, "decade", "min", "decade must be at least 1900"},
		{"query too long", planRequest{BudgetMinutes: 60, Query: strings.Repeat("x", 11)}, "q", "max", "q must be at most 10 characters"},
		{"bad mode", planRequest{BudgetMinutes: 60, Mode: "slow"}, "mode", "oneof", "mode must be one of: fast exact"},
		{"empty genre", planRequest{BudgetMinutes: 60, Genres: []string{""}}, "genres[0]", "required", "genres[0] is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("errors = %v, want exactly one", verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&planRequest{}).ToAPIError()
	if single.Code != ErrorCode || single.Details["field"] != "budget_minutes" {
		t.Errorf("single = %+v", single)
	}

	multi := ValidateStruct(&planRequest{Decade: 1995}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("multi details = %+v", multi.Details)
	}
	if !strings.Contains(multi.Message, "budget_minutes is required") || !strings.Contains(multi.Message, "decade must be a multiple of 10") {
		t.Errorf("multi message = %q", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty = %+v", empty)
	}
}

func TestNewFieldError(t *testing.T) {
	verr := NewFieldError("q", "required", "q is required", "")
	if verr.Error() != "q is required" {
		t.Errorf("Error() = %q", verr.Error())
	}
	if api := verr.ToAPIError(); api.Details["tag"] != "required" {
		t.Errorf("details = %+v", api.Details)
	}
}
