// Package normalize converts provider payloads into models.Bundle values
// and canonicalizes bundles before reconciliation.
package normalize

import (
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/trackverify/internal/models"
	"github.com/lehigh-university-libraries/trackverify/internal/textmatch"
)

// artistDelimiters are tried in order; the first one present splits the
// string.
var artistDelimiters = []string{"/", ",", "、", ";"}

// SplitArtists splits a single artist credit string such as "A/B".
func SplitArtists(s string) []string {
	for _, d := range artistDelimiters {
		if strings.Contains(s, d) {
			return strings.Split(s, d)
		}
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return []string{s}
}

// Artists normalizes each name, drops blanks and sorts the result.
func Artists(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = textmatch.Normalize(n); n != "" {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Canonical returns a copy of b with comparable text: normalized title and
// album, normalized sorted artists and canonical credit roles. Lyrics and
// URLs are left untouched.
func Canonical(b *models.Bundle) *models.Bundle {
	if b == nil {
		return nil
	}
	out := *b
	out.Title = textmatch.Normalize(b.Title)
	out.Album = textmatch.Normalize(b.Album)
	out.Artists = Artists(b.Artists)
	out.Credits = Credits(b.Credits)
	return &out
}

// CanonicalSet applies Canonical to every bundle in set.
func CanonicalSet(set models.SourceSet) models.SourceSet {
	out := models.SourceSet{Primary: Canonical(set.Primary)}
	for _, s := range set.Secondaries {
		out.Secondaries = append(out.Secondaries, models.NamedBundle{Name: s.Name, Bundle: Canonical(s.Bundle)})
	}
	return out
}
