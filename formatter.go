package libdoc

import "strings"

// FormatSnippet prepares a snippet for single-line display. Whitespace runs
// collapse to single spaces and the default highlight markers are replaced by
// open and close, which may be empty to drop highlighting.
func FormatSnippet(snippet, open, close string) string {
	s := strings.Join(strings.Fields(snippet), " ")
	return strings.NewReplacer(
		DefaultHighlightOpen, open,
		DefaultHighlightClose, close,
	).Replace(s)
}
