package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/tidwall/gjson"

	"github.com/lehigh-university-libraries/trackverify/internal/textmatch"
)

// Canonical credit roles.
const (
	RoleLyricist  = "lyricist"
	RoleComposer  = "composer"
	RoleArranger  = "arranger"
	RoleProducer  = "producer"
	RoleMixer     = "mixer"
	RoleMastering = "mastering"
)

// FuzzyRoleThreshold is the Jaro-Winkler score a label needs to be mapped
// onto an English alias it does not match exactly.
const FuzzyRoleThreshold = 0.92

type roleAliases struct {
	role    string
	aliases []string
}

var creditRoles = []roleAliases{
	{RoleLyricist, []string{"lyricist", "lyrics", "writer", "written by", "作词", "词"}},
	{RoleComposer, []string{"composer", "composition", "music", "composed by", "作曲", "曲"}},
	{RoleArranger, []string{"arranger", "arrangement", "arranged by", "编曲"}},
	{RoleProducer, []string{"producer", "produced by", "制作人", "监制"}},
	{RoleMixer, []string{"mixer", "mixing", "mixed by", "混音"}},
	{RoleMastering, []string{"mastering", "mastered by", "母带", "母带工程师"}},
}

var nameSeparators = regexp.MustCompile(`[,/、;，；]`)

// CreditRole maps a free-form credit label onto a canonical role.
func CreditRole(label string) (string, bool) {
	key := textmatch.Normalize(strings.Trim(label, " :：\t"))
	if key == "" {
		return "", false
	}
	for _, r := range creditRoles {
		for _, a := range r.aliases {
			if key == a {
				return r.role, true
			}
		}
	}
	// Longest contained alias wins so "music producer" is a producer.
	longest, containedRole := 0, ""
	for _, r := range creditRoles {
		for _, a := range r.aliases {
			n := utf8.RuneCountInString(a)
			if n >= 2 && n > longest && strings.Contains(key, a) {
				longest, containedRole = n, r.role
			}
		}
	}
	if containedRole != "" {
		return containedRole, true
	}

	best, bestRole := 0.0, ""
	jw := metrics.NewJaroWinkler()
	for _, r := range creditRoles {
		for _, a := range r.aliases {
			if !isASCII(a) {
				continue
			}
			if s := strutil.Similarity(key, a, jw); s > best {
				best, bestRole = s, r.role
			}
		}
	}
	if best >= FuzzyRoleThreshold {
		return bestRole, true
	}
	return "", false
}

// Credits maps labels onto canonical roles and normalizes and sorts the
// names. Unknown labels are dropped; names for the same role are merged.
func Credits(raw map[string][]string) map[string][]string {
	if len(raw) == 0 {
		return nil
	}
	out := map[string][]string{}
	for label, names := range raw {
		role, ok := CreditRole(label)
		if !ok {
			continue
		}
		var split []string
		for _, n := range names {
			split = append(split, nameSeparators.Split(n, -1)...)
		}
		if merged := uniqSorted(append(out[role], split...)); len(merged) > 0 {
			out[role] = merged
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CreditsFromJSON reads a JSON object of label to name list or delimited
// name string.
func CreditsFromJSON(obj string) map[string][]string {
	raw := map[string][]string{}
	gjson.Parse(obj).ForEach(func(k, v gjson.Result) bool {
		switch {
		case v.IsArray():
			for _, n := range v.Array() {
				raw[k.String()] = append(raw[k.String()], n.String())
			}
		case v.Type == gjson.String:
			raw[k.String()] = append(raw[k.String()], v.Str)
		}
		return true
	})
	return Credits(raw)
}

func uniqSorted(in []string) []string {
	sorted := Artists(in)
	out := sorted[:0]
	for _, s := range sorted {
		if len(out) == 0 || s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
