package libdoc

import (
	"strings"
	"unicode"
)

// Anchor creates a URL-safe fragment from a heading.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func Anchor(heading string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(heading) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
