package libdoc

import (
	"context"
	"strings"
)

// Format identifies the markup of a source's content.
type Format string

// Format constants.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Source is a raw document supplied for indexing.
type Source struct {
	// Path is the document path within its library, after any prefix stripping.
	Path string `json:"path"`

	// Content is the raw text of the document.
	Content string `json:"content"`

	// Title overrides the extracted title when set.
	Title string `json:"title,omitempty"`

	// URL is an optional external link to the rendered page.
	URL string `json:"url,omitempty"`

	Format Format `json:"format,omitempty"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return Errorf(EINVALID, "source path required")
	}
	return nil
}

// IsEmpty reports whether the source has no content worth indexing.
func (s *Source) IsEmpty() bool {
	return strings.TrimSpace(s.Content) == ""
}

// SourceLoader loads raw documents from a location such as a file path.
type SourceLoader interface {
	LoadSource(ctx context.Context, location string) (*Source, error)
}
