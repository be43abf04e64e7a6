package libdoc

import (
	"path"
	"strings"
)

// DefaultChunkThreshold is the body size, in characters, above which a
// document is split at its level-2 headings.
const DefaultChunkThreshold = 8000

// Chunk is a heading-bounded slice of a document body.
type Chunk struct {
	// Title is the heading text for heading chunks, or the document title.
	Title string

	// Heading is the heading text the chunk starts with, empty for the
	// text before the first heading.
	Heading string

	// Body is the exact slice of the parent body covered by this chunk.
	Body string

	// Offset is the character index in the parent body where the chunk begins.
	Offset int

	// StartLine is the 1-based line in the parent body where the chunk begins.
	StartLine int
}

// Chunker splits document bodies into chunks.
type Chunker interface {
	// Chunk returns the chunks of body. Bodies no longer than threshold
	// characters, and any body when threshold <= 0, yield a single chunk
	// titled title. Concatenating the chunk bodies reproduces body.
	Chunk(title, body string, threshold int) []Chunk
}

// TitleExtractor derives a human-readable title for a raw document.
type TitleExtractor interface {
	// ExtractTitle returns a non-empty title and the document body with any
	// front-matter removed and surrounding whitespace trimmed.
	ExtractTitle(raw, fallbackName string) (title, body string)
}

// TitleFromPath derives a title from a file path: the base name without its
// extension, with '-' and '_' replaced by spaces.
// Example: guides/getting-started.md → "getting started"
func TitleFromPath(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	title := strings.Join(strings.Fields(base), " ")
	if title == "" || title == "." || title == "/" {
		return "untitled"
	}
	return title
}
