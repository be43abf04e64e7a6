package libdoc

// Converter turns HTML sources into markdown ahead of title extraction and
// chunking, which only understand markdown headings.
type Converter interface {
	Convert(html string) (string, error)
}

// ContentExtractor narrows an HTML page to its main content.
type ContentExtractor interface {
	// ExtractContent returns the HTML of the page's main content.
	ExtractContent(html string) (string, error)
}
