package normalize

import (
	"regexp"
	"strings"
)

var (
	lrcTag      = regexp.MustCompile(`^(\[[^\]]*\])+`)
	creditLabel = regexp.MustCompile(`^([^:：]{1,20})\s*[:：]\s*(.+)$`)
)

// CreditsFromLyrics reads "作词 : 李荣浩" style header lines that
// streaming services prepend to LRC lyrics. Lines whose label is not a
// known credit role are ignored.
func CreditsFromLyrics(lrc string) map[string][]string {
	raw := map[string][]string{}
	for _, line := range strings.Split(lrc, "\n") {
		line = strings.TrimSpace(lrcTag.ReplaceAllString(strings.TrimSpace(line), ""))
		m := creditLabel.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if _, ok := CreditRole(m[1]); !ok {
			continue
		}
		raw[m[1]] = append(raw[m[1]], m[2])
	}
	return Credits(raw)
}
