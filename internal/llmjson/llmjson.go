// Package llmjson pulls a JSON object out of free-form model output.
package llmjson

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// ErrNoObject is returned when no JSON object can be located.
var ErrNoObject = errors.New("no JSON object found in model output")

const geminiTextPath = "candidates.0.content.parts.0.text"

// Unwrap returns the generated text when content is a raw Gemini
// generateContent response, and content unchanged otherwise.
func Unwrap(content string) string {
	trimmed := strings.TrimSpace(content)
	if !gjson.Valid(trimmed) {
		return content
	}
	if txt := gjson.Get(trimmed, geminiTextPath); txt.Type == gjson.String {
		return txt.Str
	}
	return content
}

// ExtractObject locates a JSON object in content. It tries, in order, the
// whole payload, a fenced code block, the first balanced {...} span and
// finally everything between the first '{' and the last '}'.
func ExtractObject(content string) (string, error) {
	trimmed := strings.TrimSpace(Unwrap(content))
	if trimmed == "" {
		return "", errors.Wrap(ErrNoObject, "empty payload")
	}

	if isObject(trimmed) {
		return trimmed, nil
	}
	if fenced, ok := fencedBlock(trimmed); ok && isObject(fenced) {
		return fenced, nil
	}
	if span, ok := balancedSpan(trimmed); ok {
		return span, nil
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			if candidate := trimmed[start : end+1]; isObject(candidate) {
				return candidate, nil
			}
		}
	}
	return "", errors.Wrapf(ErrNoObject, "payload snippet: %s", snippet(trimmed))
}

// Decode extracts a JSON object from content and unmarshals it into target.
func Decode(content string, target any) error {
	obj, err := ExtractObject(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(obj), target); err != nil {
		return errors.Wrap(err, "decode model JSON")
	}
	return nil
}

func isObject(s string) bool {
	return strings.HasPrefix(s, "{") && gjson.Valid(s)
}

// fencedBlock returns the body of the first ``` fence, with an optional
// language tag removed.
func fencedBlock(content string) (string, bool) {
	start := strings.Index(content, "```")
	if start < 0 {
		return "", false
	}
	body := content[start+3:]
	end := strings.Index(body, "```")
	if end < 0 {
		return "", false
	}
	body = body[:end]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		tag := strings.TrimSpace(body[:nl])
		if tag != "" && !strings.ContainsAny(tag, "{[") {
			body = body[nl+1:]
		}
	}
	return strings.TrimSpace(body), true
}

// balancedSpan scans for the first '{' whose matching '}' closes a valid
// object. Braces inside string literals are ignored.
func balancedSpan(content string) (string, bool) {
	for start := strings.IndexByte(content, '{'); start >= 0; {
		if end := matchBrace(content, start); end > start {
			if candidate := content[start : end+1]; gjson.Valid(candidate) {
				return candidate, true
			}
		}
		next := strings.IndexByte(content[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func snippet(s string) string {
	const limit = 120
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
