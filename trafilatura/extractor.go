// Package trafilatura extracts the main content of HTML pages whose layout
// no documentation generator selector recognizes.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/libdoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements libdoc.ContentExtractor at compile time.
var _ libdoc.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to find the main content of a page by
// text density, dropping navigation and boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent returns the HTML of the page's main content. The page
// title becomes an H1 when the content has none. Returns ENOTFOUND when no
// content could be identified.
func (e *Extractor) ExtractContent(page string) (string, error) {
	if strings.TrimSpace(page) == "" {
		return "", libdoc.Errorf(libdoc.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(page), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return "", libdoc.Errorf(libdoc.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return "", libdoc.Errorf(libdoc.ENOTFOUND, "no main content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return "", libdoc.Errorf(libdoc.EINTERNAL, "render content: %v", err)
	}
	out := buf.String()
	if title := strings.TrimSpace(result.Metadata.Title); title != "" && !strings.Contains(out, "<h1") {
		out = "<h1>" + html.EscapeString(title) + "</h1>\n" + out
	}
	return out, nil
}
