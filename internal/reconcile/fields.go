package reconcile

import (
	"github.com/lehigh-university-libraries/trackverify/internal/models"
)

// Kind selects the comparator used for a field.
type Kind string

const (
	KindString   Kind = "string"
	KindList     Kind = "list"
	KindDuration Kind = "duration"
	KindLyrics   Kind = "lyrics"
	KindCover    Kind = "cover"
	KindCredits  Kind = "credits"
)

// FieldSpec configures how one report field is compared.
type FieldSpec struct {
	Name        string
	Kind        Kind
	Thresholds  Thresholds
	ToleranceMS int64

	// Text reads string, lyrics and cover fields.
	Text func(*models.Bundle) string
	// List reads list fields.
	List func(*models.Bundle) []string
	// Millis reads duration fields.
	Millis func(*models.Bundle) int64
}

// DefaultFields is the field table used by New when none is given.
var DefaultFields = []FieldSpec{
	{
		Name:       "title",
		Kind:       KindString,
		Thresholds: DefaultThresholds,
		Text:       func(b *models.Bundle) string { return b.Title },
	},
	{
		Name: "artists",
		Kind: KindList,
		List: func(b *models.Bundle) []string { return b.Artists },
	},
	{
		Name:       "album",
		Kind:       KindString,
		Thresholds: DefaultThresholds,
		Text:       func(b *models.Bundle) string { return b.Album },
	},
	{
		Name:        "duration",
		Kind:        KindDuration,
		ToleranceMS: DefaultToleranceMS,
		Millis:      func(b *models.Bundle) int64 { return b.DurationMS },
	},
	{
		Name:       "lyrics",
		Kind:       KindLyrics,
		Thresholds: DefaultThresholds,
		Text:       func(b *models.Bundle) string { return b.Lyrics.Original },
	},
	{
		Name: "cover_art",
		Kind: KindCover,
		Text: func(b *models.Bundle) string { return b.CoverURL },
	},
	{
		Name: "credits",
		Kind: KindCredits,
	},
}

// evaluate runs the comparator for f.
func (f FieldSpec) evaluate(set models.SourceSet, cover coverInput) Node {
	p := set.Primary
	switch f.Kind {
	case KindString:
		return CompareString(f.Text(p), observe(set, f.Text), f.Thresholds)
	case KindList:
		return CompareList(f.List(p), observe(set, f.List))
	case KindDuration:
		return CompareDuration(f.Millis(p), observe(set, f.Millis), f.ToleranceMS)
	case KindLyrics:
		return CompareLyrics(f.Text(p), observe(set, f.Text), f.Thresholds)
	case KindCover:
		return CompareCover(f.Text(p), observe(set, f.Text), cover.reference, cover.verdict)
	case KindCredits:
		credits := func(b *models.Bundle) map[string][]string { return b.Credits }
		return CompareCredits(p.Credits, observe(set, credits))
	default:
		v := newVerdict(nil)
		v.Note = "unknown field kind " + string(f.Kind)
		return v
	}
}

// observe reads one field from every secondary bundle, in order.
func observe[T any](set models.SourceSet, get func(*models.Bundle) T) []Observation[T] {
	out := make([]Observation[T], 0, len(set.Secondaries))
	for _, s := range set.Secondaries {
		if s.Bundle == nil {
			continue
		}
		out = append(out, Observation[T]{Source: s.Name, Value: get(s.Bundle)})
	}
	return out
}
