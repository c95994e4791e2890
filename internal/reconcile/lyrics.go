package reconcile

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/width"

	"github.com/lehigh-university-libraries/trackverify/internal/textmatch"
)

// ExcerptRunes is how much of each source's lyrics is kept in a verdict.
const ExcerptRunes = 100

var (
	lrcTimestamp = regexp.MustCompile(`\[\d+:\d+(?:[.:]\d+)?\]`)
	cjkPunct     = strings.NewReplacer("。", ".", "、", ",", "「", "\"", "」", "\"", "『", "\"", "』", "\"")
)

// PreprocessLyrics strips [mm:ss.xx] timestamps and blank lines, trims each
// line, folds full-width punctuation to ASCII and lower-cases the result.
func PreprocessLyrics(text string) string {
	text = lrcTimestamp.ReplaceAllString(text, "")
	text = cjkPunct.Replace(width.Fold.String(text))

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.ToLower(strings.Join(kept, "\n"))
}

// CompareLyrics reconciles lyric text using the text thresholds after
// preprocessing both sides. The highest similarity seen is always reported.
func CompareLyrics(primary string, observed []Observation[string], th Thresholds) *Verdict {
	v := newVerdict(primary)
	clean := PreprocessLyrics(primary)
	if clean == "" {
		v.Note = "primary source has no lyrics"
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
		v.Sources[o.Source] = excerpt(o.Value, ExcerptRunes)

		ratio := textmatch.Similarity(clean, PreprocessLyrics(o.Value))
		best = max(best, ratio)
		switch {
		case ratio >= th.Exact:
			v.ConfirmedBy = append(v.ConfirmedBy, o.Source)
		case ratio >= th.Similar && !noted:
			noted = true
			v.Note = fmt.Sprintf("lyrics similar to %s but differ (similarity: %.2f%%)", o.Source, ratio*100)
		}
	}
	if len(present) > 0 {
		v.Similarity = &best
	}
	v.settle(present, noted)
	return v
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
