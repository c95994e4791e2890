package sources

import (
	"strings"

	"github.com/lehigh-university-libraries/trackverify/internal/matching"
)

// Query is the free-text search string for target: the title followed by
// the first artist.
func Query(t matching.Target) string {
	q := strings.TrimSpace(t.Title)
	if len(t.Artists) > 0 {
		if a := strings.TrimSpace(t.Artists[0]); a != "" {
			q += " " + a
		}
	}
	return strings.TrimSpace(q)
}
