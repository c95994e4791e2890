package reconcile

import (
	"strings"

	"github.com/lehigh-university-libraries/trackverify/internal/coververdict"
	"github.com/lehigh-university-libraries/trackverify/internal/models"
)

// CoverReference returns the verification source whose cover is compared
// against the primary cover: the first secondary with a cover URL.
func CoverReference(set models.SourceSet) (name, url string) {
	for _, s := range set.Secondaries {
		if s.Bundle != nil && strings.TrimSpace(s.Bundle.CoverURL) != "" {
			return s.Name, s.Bundle.CoverURL
		}
	}
	return "", ""
}

// CompareCover turns the AI comparison of the primary cover against the
// reference source's cover into a verdict.
func CompareCover(primaryURL string, observed []Observation[string], reference string, ai coververdict.Verdict) *Verdict {
	v := newVerdict(primaryURL)
	if strings.TrimSpace(primaryURL) == "" {
		v.Note = "primary source has no cover"
		return v
	}

	for _, o := range observed {
		if strings.TrimSpace(o.Value) != "" {
			v.Sources[o.Source] = o.Value
		}
	}
	if len(v.Sources) == 0 {
		v.Note = noteNoData
		return v
	}

	v.AIComparison = &ai
	if reference == "" || ai.Status == coververdict.StatusNotFound {
		v.Note = "no usable cover comparison"
		return v
	}

	conf := ai.Confidence
	v.Similarity = &conf
	switch ai.Status {
	case coververdict.StatusConfirmed:
		v.Status = Confirmed
		v.ConfirmedBy = []string{reference}
	default:
		v.Status = Questionable
		if len(ai.Differences) > 0 {
			v.Note = "cover differs from " + reference + ": " + strings.Join(ai.Differences, "; ")
		} else {
			v.Note = "cover may differ from " + reference
		}
	}
	return v
}
