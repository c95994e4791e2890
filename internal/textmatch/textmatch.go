// Package textmatch provides the string canonicalization and similarity
// scoring shared by candidate selection and field reconciliation.
package textmatch

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Normalize lower-cases s, trims it and collapses internal whitespace runs
// to a single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Similarity returns the matching-blocks ratio (2*M/T) of the case-folded
// inputs. Either input being empty yields 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}
	// The matcher's tie-breaking depends on argument order.
	if a > b {
		a, b = b, a
	}
	m := difflib.NewMatcher(runes(a), runes(b))
	return m.Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
