package coververdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStructured(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantStatus Status
		wantConf   float64
		wantSame   bool
		wantDiffs  []string
		wantNotes  string
	}{
		{
			name:       "confirmed",
			raw:        `{"is_same": true, "confidence": 0.95, "differences": [], "notes": "identical artwork"}`,
			wantStatus: StatusConfirmed,
			wantConf:   0.95,
			wantSame:   true,
			wantDiffs:  []string{},
			wantNotes:  "identical artwork",
		},
		{
			name:       "same but low confidence",
			raw:        `{"is_same": true, "confidence": 0.8}`,
			wantStatus: StatusQuestionable,
			wantConf:   0.8,
			wantSame:   true,
			wantDiffs:  []string{},
		},
		{
			name:       "different with reasons in fence",
			raw:        "Comparison:\n```json\n{\"is_same\": false, \"confidence\": 0.9, \"differences\": [\"color\", \"crop\"]}\n```",
			wantStatus: StatusQuestionable,
			wantConf:   0.9,
			wantDiffs:  []string{"color", "crop"},
		},
		{
			name:       "defaults for missing keys",
			raw:        `{}`,
			wantStatus: StatusQuestionable,
			wantDiffs:  []string{},
		},
		{
			name:       "confidence clamped",
			raw:        `{"is_same": true, "confidence": 7}`,
			wantStatus: StatusConfirmed,
			wantConf:   1,
			wantSame:   true,
			wantDiffs:  []string{},
		},
		{
			name:       "gemini envelope",
			raw:        `{"candidates":[{"content":{"parts":[{"text":"{\"is_same\": true, \"confidence\": 0.99}"}]}}]}`,
			wantStatus: StatusConfirmed,
			wantConf:   0.99,
			wantSame:   true,
			wantDiffs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			assert.True(t, got.Structured)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-9)
			assert.Equal(t, tt.wantSame, got.IsSame)
			assert.Equal(t, tt.wantDiffs, got.Differences)
			assert.Equal(t, tt.wantNotes, got.Notes)
		})
	}
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantStatus Status
		wantConf   float64
		wantSame   bool
	}{
		{"same", "They look the same to me.", StatusConfirmed, 0.9, true},
		{"chinese same", "两张封面相同", StatusConfirmed, 0.9, true},
		{"yes", "Yes", StatusConfirmed, 0.9, true},
		{"different", "The covers are different {broken", StatusQuestionable, 0.5, false},
		{"chinese different", "两张封面不相同", StatusQuestionable, 0.5, false},
		{"differently", "Differently coloured", StatusQuestionable, 0.5, false},
		{"differentiated", "The artwork is differentiated by its border", StatusQuestionable, 0.5, false},
		{"not the same", "These are not the same image", StatusQuestionable, 0.5, false},
		{"bare no", "No.", StatusQuestionable, 0.5, false},
		{"no inside word", "I cannot tell, nothing visible", StatusNotFound, 0, false},
		{"unrelated", "unable to load images", StatusNotFound, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			assert.False(t, got.Structured)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-9)
			assert.Equal(t, tt.wantSame, got.IsSame)
			assert.Equal(t, tt.raw, got.Notes)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	got := Parse("   ")
	assert.Equal(t, StatusNotFound, got.Status)
	assert.Zero(t, got.Confidence)
	assert.NotNil(t, got.Differences)
}
