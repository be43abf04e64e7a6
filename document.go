package libdoc

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Document represents one indexed unit: either a whole source file or one
// heading-bounded chunk of it.
type Document struct {
	ID      int64  `json:"id"`
	Library string `json:"library"`

	// Path is unique within the library. Chunks of a split file get
	// synthetic paths ("guide.md#0", "guide.md#1", ...).
	Path string `json:"path"`

	// ParentPath is the source file path. Equal to Path for unsplit documents.
	ParentPath string `json:"parentPath"`

	ChunkIndex int `json:"chunkIndex"`
	ChunkCount int `json:"chunkCount"`

	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Body        string `json:"body,omitempty"`
	ContentHash string `json:"contentHash"`

	// Offset is the character index in the parent body where this chunk begins.
	Offset int `json:"offset"`

	// StartLine is the 1-based line in the parent body where this chunk begins.
	StartLine int `json:"startLine"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsChunk reports whether the document is one of several chunks of a file.
func (d *Document) IsChunk() bool {
	return d.ChunkCount > 1
}

// DisplayTitle returns the title, falling back to the path.
func (d *Document) DisplayTitle() string {
	if d.Title == "" {
		return d.Path
	}
	return d.Title
}

// ChunkPath returns the synthetic path of chunk i of the file at path.
func ChunkPath(path string, i int) string {
	return fmt.Sprintf("%s#%d", path, i)
}

// DocumentUpsert describes the complete, freshly chunked contents of one
// source file. Upserting replaces every row previously derived from Path.
type DocumentUpsert struct {
	Library string
	Path    string
	URL     string
	Chunks  []Chunk
}

// Validate returns an error if the upsert contains invalid fields.
func (u *DocumentUpsert) Validate() error {
	if strings.TrimSpace(u.Library) == "" {
		return Errorf(EINVALID, "library name required")
	}
	if strings.TrimSpace(u.Path) == "" {
		return Errorf(EINVALID, "document path required")
	}
	if len(u.Chunks) == 0 {
		return Errorf(EINVALID, "document %q has no content", u.Path)
	}
	return nil
}

// Documents derives the document rows for the upsert. A single chunk keeps
// the source path; multiple chunks get synthetic paths and, when the source
// has a URL, heading anchors.
func (u *DocumentUpsert) Documents() []*Document {
	docs := make([]*Document, len(u.Chunks))
	for i, c := range u.Chunks {
		doc := &Document{
			Library:    u.Library,
			Path:       u.Path,
			ParentPath: u.Path,
			ChunkIndex: i,
			ChunkCount: len(u.Chunks),
			Title:      c.Title,
			URL:        u.URL,
			Body:       c.Body,
			Offset:     c.Offset,
			StartLine:  c.StartLine,
		}
		if len(u.Chunks) > 1 {
			doc.Path = ChunkPath(u.Path, i)
			if u.URL != "" && c.Heading != "" {
				if anchor := Anchor(c.Heading); anchor != "" {
					doc.URL = u.URL + "#" + anchor
				}
			}
		}
		docs[i] = doc
	}
	return docs
}

// UpsertResult reports the rows an upsert left in the store.
type UpsertResult struct {
	Documents []*Document `json:"documents"`

	// Unchanged is true when the stored rows already matched the upsert
	// and nothing was written.
	Unchanged bool `json:"unchanged"`
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	Library    *string `json:"library"`
	ParentPath *string `json:"parentPath"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentFinder looks up a single document.
type DocumentFinder interface {
	// FindDocument retrieves one document of a library, body included.
	// Returns ENOTFOUND if nothing matches, or if a title lookup matches
	// more than one document.
	FindDocument(ctx context.Context, library string, lookup Lookup) (*Document, error)
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	DocumentFinder

	// UpsertDocument atomically replaces every document derived from the
	// upsert's path and rebuilds their postings. Readers never observe a
	// partially replaced set.
	UpsertDocument(ctx context.Context, upsert *DocumentUpsert) (*UpsertResult, error)

	// FindDocuments retrieves document metadata (without bodies) ordered by path.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)
}

// JoinChunks reassembles the source file the given rows were derived from.
// Rows are ordered by chunk index; the result takes its title and URL from
// the first chunk, without any heading anchor.
// Returns EINVALID if the rows do not form one complete file.
func JoinChunks(docs []*Document) (*Document, error) {
	if len(docs) == 0 {
		return nil, Errorf(EINVALID, "no chunks to join")
	}

	sorted := slices.Clone(docs)
	slices.SortFunc(sorted, func(a, b *Document) int { return a.ChunkIndex - b.ChunkIndex })

	first := sorted[0]
	if len(sorted) != max(first.ChunkCount, 1) {
		return nil, Errorf(EINVALID, "document %q has %d of %d chunks", first.ParentPath, len(sorted), first.ChunkCount)
	}

	var body strings.Builder
	for i, d := range sorted {
		if d.ParentPath != first.ParentPath || d.ChunkIndex != i {
			return nil, Errorf(EINVALID, "document %q has inconsistent chunks", first.ParentPath)
		}
		body.WriteString(d.Body)
	}

	url, _, _ := strings.Cut(first.URL, "#")
	return &Document{
		Library:    first.Library,
		Path:       first.ParentPath,
		ParentPath: first.ParentPath,
		ChunkCount: 1,
		Title:      first.Title,
		URL:        url,
		Body:       body.String(),
		CreatedAt:  first.CreatedAt,
		UpdatedAt:  first.UpdatedAt,
	}, nil
}
