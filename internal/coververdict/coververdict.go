// Package coververdict turns a vision model's answer to "are these two
// covers the same artwork?" into a normalized verdict.
package coververdict

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/lehigh-university-libraries/trackverify/internal/llmjson"
)

// Status mirrors the field verdict statuses.
type Status string

const (
	StatusConfirmed    Status = "confirmed"
	StatusQuestionable Status = "questionable"
	StatusNotFound     Status = "not_found"
)

// ConfirmThreshold is the confidence a structured verdict must exceed to be
// confirmed.
const ConfirmThreshold = 0.8

// Fixed confidences used when the response had to be read heuristically.
const (
	KeywordSameConfidence      = 0.9
	KeywordDifferentConfidence = 0.5
)

// Verdict is the normalized cover comparison.
type Verdict struct {
	IsSame      bool     `json:"is_same" yaml:"is_same"`
	Confidence  float64  `json:"confidence" yaml:"confidence"`
	Differences []string `json:"differences" yaml:"differences"`
	Notes       string   `json:"notes" yaml:"notes"`
	Status      Status   `json:"status" yaml:"status"`
	Structured  bool     `json:"structured" yaml:"structured"`
}

// NotFound is the neutral verdict used when nothing can be read.
func NotFound(notes string) Verdict {
	return Verdict{Differences: []string{}, Notes: notes, Status: StatusNotFound}
}

var (
	negativePhrases = regexp.MustCompile(`不相同|不一样|not the same|\bdiffer(s|ed|ent\w*)?\b`)
	positiveWords   = regexp.MustCompile(`相同|一样|\bsame\b|\byes\b`)
	bareNo          = regexp.MustCompile(`\bno\b`)
)

// Parse reads raw, which may be JSON, JSON wrapped in prose or a code fence,
// a Gemini response envelope, or free text. It never fails.
func Parse(raw string) (v Verdict) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Recovered while parsing cover verdict", "panic", r)
			v = NotFound(raw)
		}
	}()

	if strings.TrimSpace(raw) == "" {
		return NotFound("")
	}

	if obj, err := llmjson.ExtractObject(raw); err == nil {
		return fromJSON(obj)
	}

	slog.Debug("Cover verdict is not JSON, falling back to keywords")
	return fromKeywords(llmjson.Unwrap(raw))
}

func fromJSON(obj string) Verdict {
	root := gjson.Parse(obj)
	v := Verdict{
		IsSame:      root.Get("is_same").Bool(),
		Confidence:  clamp(root.Get("confidence").Float()),
		Differences: []string{},
		Notes:       root.Get("notes").String(),
		Structured:  true,
	}
	diffs := root.Get("differences")
	switch {
	case diffs.IsArray():
		for _, d := range diffs.Array() {
			if s := strings.TrimSpace(d.String()); s != "" {
				v.Differences = append(v.Differences, s)
			}
		}
	case diffs.Type == gjson.String && strings.TrimSpace(diffs.Str) != "":
		v.Differences = append(v.Differences, strings.TrimSpace(diffs.Str))
	}

	if v.IsSame && v.Confidence > ConfirmThreshold {
		v.Status = StatusConfirmed
	} else {
		v.Status = StatusQuestionable
	}
	return v
}

// fromKeywords checks negations before affirmations so "不相同" and
// "not the same" are not read as matches.
func fromKeywords(text string) Verdict {
	lower := strings.ToLower(strings.TrimSpace(text))
	v := Verdict{Differences: []string{}, Notes: text}
	switch {
	case negativePhrases.MatchString(lower):
		v.Confidence = KeywordDifferentConfidence
		v.Status = StatusQuestionable
	case positiveWords.MatchString(lower):
		v.IsSame = true
		v.Confidence = KeywordSameConfidence
		v.Status = StatusConfirmed
	case bareNo.MatchString(lower):
		v.Confidence = KeywordDifferentConfidence
		v.Status = StatusQuestionable
	default:
		v.Status = StatusNotFound
	}
	return v
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
