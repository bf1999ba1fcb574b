// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"título", "título"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte(`{"a":1}`))
	b := generateETag([]byte(`{"a":2}`))
	if a == b {
		t.Error("different payloads share an ETag")
	}
	if a != generateETag([]byte(`{"a":1}`)) {
		t.Error("ETag is not deterministic")
	}
	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("ETag %s is not quoted", a)
	}
}

func TestGetIntParam(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 5, false},
		{"limit=12", 12, false},
		{"limit=%2012%20", 12, false},
		{"limit=-3", -3, false},
		{"limit=abc", 0, true},
		{"limit=1.5", 0, true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		got, verr := getIntParam(req, "limit", 5)
		if (verr != nil) != tt.wantErr {
			t.Errorf("%q: err = %v, wantErr %v", tt.query, verr, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%q: got %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestDecodeJSONBody(t *testing.T) {
	type body struct {
		Budget int `json:"budget_minutes"`
	}

	t.Run("valid", func(t *testing.T) {
		var dst body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"budget_minutes": 90}`))
		if err := decodeJSONBody(httptest.NewRecorder(), req, &dst); err != nil || dst.Budget != 90 {
			t.Errorf("dst = %+v, err = %v", dst, err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		var dst body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		if err := decodeJSONBody(httptest.NewRecorder(), req, &dst); !errors.Is(err, errBodyRequired) {
			t.Errorf("err = %v, want errBodyRequired", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		var dst body
		payload := `{"budget_minutes": 1, "pad": "` + strings.Repeat("x", maxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		if err := decodeJSONBody(httptest.NewRecorder(), req, &dst); err == nil {
			t.Error("expected error for oversized body")
		}
	})
}
