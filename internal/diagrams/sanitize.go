package diagrams

import (
	"regexp"
	"strings"
)

var nonIDChar = regexp.MustCompile(`[^A-Za-z0-9_]`)
var multiUnderscore = regexp.MustCompile(`_+`)

// SanitizeNodeID collapses an arbitrary identifier into the
// `[A-Za-z0-9_]`-only, no-leading-digit, collapsed-underscore form Mermaid
// node ids require.
func SanitizeNodeID(raw string) string {
	id := nonIDChar.ReplaceAllString(raw, "_")
	id = multiUnderscore.ReplaceAllString(id, "_")
	id = strings.Trim(id, "_")
	if id == "" {
		id = "n"
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "n_" + id
	}
	return id
}

// SanitizeLabel applies label sanitisation: newlines become
// spaces, []{} become (), " becomes ', truncated to 40 chars with an
// ellipsis.
func SanitizeLabel(raw string) string {
	label := strings.ReplaceAll(raw, "\n", " ")
	label = strings.ReplaceAll(label, "[", "(")
	label = strings.ReplaceAll(label, "]", ")")
	label = strings.ReplaceAll(label, "{", "(")
	label = strings.ReplaceAll(label, "}", ")")
	label = strings.ReplaceAll(label, "\"", "'")
	const maxLen = 40
	runes := []rune(label)
	if len(runes) > maxLen {
		label = string(runes[:maxLen-1]) + "…"
	}
	return label
}
