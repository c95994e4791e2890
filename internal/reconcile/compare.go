package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/trackverify/internal/textmatch"
)

// Default similarity thresholds for text fields.
const (
	DefaultExact   = 0.95
	DefaultSimilar = 0.80
)

const (
	noteEmptyPrimary = "primary source has no value"
	noteNoData       = "no verification source had data"
	noteDisagree     = "sources disagree"
)

// Observation is one verification source's value for a field.
type Observation[T any] struct {
	Source string
	Value  T
}

// Thresholds bound the exact and similar-but-different similarity ranges.
type Thresholds struct {
	Exact   float64
	Similar float64
}

// DefaultThresholds is 0.95 / 0.80.
var DefaultThresholds = Thresholds{Exact: DefaultExact, Similar: DefaultSimilar}

// CompareString reconciles a scalar text field. A source at or above
// th.Exact confirms; the first source in [th.Similar, th.Exact) supplies the
// note.
func CompareString(primary string, observed []Observation[string], th Thresholds) *Verdict {
	v := newVerdict(primary)
	if strings.TrimSpace(primary) == "" {
		v.Note = noteEmptyPrimary
		return v
	}

	var present []string
	best := 0.0
	noted := false
	for _, o := range observed {
		if strings.TrimSpace(o.Value) == "" {
			continue
		}
		present = append(present, o.Source)
		v.Sources[o.Source] = o.Value

		ratio := textmatch.Similarity(primary, o.Value)
		best = max(best, ratio)
		switch {
		case ratio >= th.Exact:
			v.ConfirmedBy = append(v.ConfirmedBy, o.Source)
		case ratio >= th.Similar && !noted:
			noted = true
			v.Note = fmt.Sprintf("similar to %s but differs (similarity: %.2f%%)", o.Source, ratio*100)
		}
	}
	if len(present) > 0 {
		v.Similarity = &best
	}
	v.settle(present, noted)
	return v
}

// CompareList reconciles a set-valued field such as artists. Elements are
// compared exactly. A source containing every primary element confirms; a
// partial overlap is questionable.
func CompareList(primary []string, observed []Observation[[]string]) *Verdict {
	want := uniq(primary)
	v := newVerdict(want)
	if len(want) == 0 {
		v.Value = []string{}
		v.Note = noteEmptyPrimary
		return v
	}

	var present []string
	noted := false
	for _, o := range observed {
		have := uniq(o.Value)
		if len(have) == 0 {
			continue
		}
		present = append(present, o.Source)
		v.Sources[o.Source] = have

		overlap := intersect(want, have)
		switch {
		case len(overlap) == len(want):
			v.ConfirmedBy = append(v.ConfirmedBy, o.Source)
		case len(overlap) > 0 && !noted:
			noted = true
			sort.Strings(overlap)
			v.Note = fmt.Sprintf("partial match with %s (matched: %s)", o.Source, strings.Join(overlap, ", "))
		}
	}
	v.settle(present, noted)
	return v
}

// settle assigns the final status once every source has been seen. A
// recorded note is kept even when another source confirms.
func (v *Verdict) settle(present []string, noted bool) {
	switch {
	case len(v.ConfirmedBy) > 0:
		v.Status = Confirmed
	case len(present) == 0:
		v.Status = NotFound
		v.Note = noteNoData
	case noted:
		v.Status = Questionable
	case len(present) == 1:
		v.Status = Questionable
		v.Note = present[0] + " disagrees"
	default:
		v.Status = Questionable
		v.Note = noteDisagree
	}
}

// uniq drops blanks and duplicates, keeping first-seen order.
func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func intersect(want, have []string) []string {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	var out []string
	for _, w := range want {
		if _, ok := set[w]; ok {
			out = append(out, w)
		}
	}
	return out
}
