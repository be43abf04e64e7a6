package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/goldmark"
	"github.com/fwojciec/libdoc/ingest"
	"github.com/fwojciec/libdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a DocumentService that remembers every upsert.
type recorder struct {
	mock.DocumentService
	upserts []*libdoc.DocumentUpsert
}

func newRecorder() *recorder {
	r := &recorder{}
	r.UpsertDocumentFn = func(_ context.Context, u *libdoc.DocumentUpsert) (*libdoc.UpsertResult, error) {
		r.upserts = append(r.upserts, u)
		return &libdoc.UpsertResult{Documents: u.Documents()}, nil
	}
	return r
}

func newIndexer(docs libdoc.DocumentService) *ingest.Indexer {
	return &ingest.Indexer{
		Documents:   docs,
		Titles:      goldmark.NewTitleExtractor(),
		Chunker:     goldmark.NewChunker(),
		Threshold:   libdoc.DefaultChunkThreshold,
		Concurrency: 4,
	}
}

func TestIndexer_IndexSources(t *testing.T) {
	t.Parallel()

	t.Run("indexes sources with extracted titles", func(t *testing.T) {
		t.Parallel()

		docs := newRecorder()
		ix := newIndexer(docs)

		result, err := ix.IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "intro.md", Content: "# Intro\nThis covers authentication and websockets.", URL: "https://x.dev/intro"},
			{Path: "guides/getting-started.md", Content: "plain text"},
		}, nil)

		require.NoError(t, err)
		require.NoError(t, result.Err())
		assert.NotEmpty(t, result.RunID)
		assert.Equal(t, 2, result.Indexed)
		assert.Equal(t, 2, result.Chunks)
		require.Len(t, docs.upserts, 2)
		assert.Equal(t, "demo", docs.upserts[0].Library)
		assert.Equal(t, "https://x.dev/intro", docs.upserts[0].URL)
		assert.Equal(t, "Intro", docs.upserts[0].Chunks[0].Title)
		assert.Equal(t, "getting started", docs.upserts[1].Chunks[0].Title)
	})

	t.Run("explicit title wins over extraction", func(t *testing.T) {
		t.Parallel()

		docs := newRecorder()

		_, err := newIndexer(docs).IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "a.md", Content: "# Heading\ntext", Title: "Custom"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Custom", docs.upserts[0].Chunks[0].Title)
	})

	t.Run("commits in input order", func(t *testing.T) {
		t.Parallel()

		docs := newRecorder()
		var sources []*libdoc.Source
		for i := 0; i < 50; i++ {
			sources = append(sources, &libdoc.Source{Path: fmt.Sprintf("doc%02d.md", i), Content: "text"})
		}

		_, err := newIndexer(docs).IndexSources(context.Background(), "demo", sources, nil)

		require.NoError(t, err)
		require.Len(t, docs.upserts, 50)
		for i, u := range docs.upserts {
			assert.Equal(t, fmt.Sprintf("doc%02d.md", i), u.Path)
		}
	})

	t.Run("splits oversized sources at level-2 headings", func(t *testing.T) {
		t.Parallel()

		docs := newRecorder()
		ix := newIndexer(docs)
		ix.Threshold = 10

		result, err := ix.IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "guide.md", Content: "# Guide\nintro\n## One\nfirst\n## Two\nsecond"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Indexed)
		assert.Equal(t, 3, result.Chunks)
	})

	t.Run("skips empty sources", func(t *testing.T) {
		t.Parallel()

		docs := newRecorder()

		result, err := newIndexer(docs).IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "empty.md", Content: "  \n\t"},
			{Path: "frontmatter-only.md", Content: "---\ntitle: Nothing\n---\n"},
			{Path: "real.md", Content: "content"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Skipped)
		assert.Equal(t, 1, result.Indexed)
		assert.Len(t, docs.upserts, 1)
	})

	t.Run("continues past failures and reports EPARTIAL", func(t *testing.T) {
		t.Parallel()

		var committed []string
		docs := &mock.DocumentService{
			UpsertDocumentFn: func(_ context.Context, u *libdoc.DocumentUpsert) (*libdoc.UpsertResult, error) {
				if u.Path == "bad.md" {
					return nil, errors.New("disk full")
				}
				committed = append(committed, u.Path)
				return &libdoc.UpsertResult{Documents: u.Documents()}, nil
			},
		}

		result, err := newIndexer(docs).IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "a.md", Content: "a"},
			{Path: "bad.md", Content: "b"},
			{Path: "c.md", Content: "c"},
			{Path: "", Content: "no path"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.md", "c.md"}, committed)
		require.Len(t, result.Failures, 2)
		assert.Equal(t, "bad.md", result.Failures[0].Path)
		assert.EqualError(t, result.Failures[0].Err, "disk full")
		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(result.Failures[1].Err))
		assert.Equal(t, libdoc.EPARTIAL, libdoc.ErrorCode(result.Err()))
		assert.Equal(t, "2 of 4 documents failed to index", libdoc.ErrorMessage(result.Err()))
	})

	t.Run("counts unchanged documents", func(t *testing.T) {
		t.Parallel()

		docs := &mock.DocumentService{
			UpsertDocumentFn: func(_ context.Context, u *libdoc.DocumentUpsert) (*libdoc.UpsertResult, error) {
				return &libdoc.UpsertResult{Documents: u.Documents(), Unchanged: true}, nil
			},
		}

		result, err := newIndexer(docs).IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "a.md", Content: "a"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Unchanged)
		assert.Zero(t, result.Indexed)
	})

	t.Run("converts HTML sources", func(t *testing.T) {
		t.Parallel()

		docs := newRecorder()
		ix := newIndexer(docs)
		ix.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.Equal(t, "<h1>Hello</h1>", html)
				return "# Hello", nil
			},
		}

		_, err := ix.IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "page.html", Content: "<h1>Hello</h1>", Format: libdoc.FormatHTML},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Hello", docs.upserts[0].Chunks[0].Title)
	})

	t.Run("extracts HTML content before conversion", func(t *testing.T) {
		t.Parallel()

		docs := newRecorder()
		ix := newIndexer(docs)
		ix.Extractor = &mock.ContentExtractor{
			ExtractContentFn: func(html string) (string, error) {
				return "<h1>Main</h1>", nil
			},
		}
		ix.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.Equal(t, "<h1>Main</h1>", html)
				return "# Main", nil
			},
		}

		_, err := ix.IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "page.html", Content: "<nav>x</nav><h1>Main</h1>", Format: libdoc.FormatHTML},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Main", docs.upserts[0].Chunks[0].Title)
	})

	t.Run("records extraction errors", func(t *testing.T) {
		t.Parallel()

		ix := newIndexer(newRecorder())
		ix.Extractor = &mock.ContentExtractor{
			ExtractContentFn: func(string) (string, error) {
				return "", libdoc.Errorf(libdoc.EINVALID, "bad html")
			},
		}
		ix.Converter = &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "# Converted", nil
			},
		}

		result, err := ix.IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "page.html", Content: "<p>x</p>", Format: libdoc.FormatHTML},
		}, nil)

		require.NoError(t, err)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "bad html", libdoc.ErrorMessage(result.Failures[0].Err))
	})

	t.Run("fails HTML sources without a converter", func(t *testing.T) {
		t.Parallel()

		result, err := newIndexer(newRecorder()).IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "page.html", Content: "<p>x</p>", Format: libdoc.FormatHTML},
		}, nil)

		require.NoError(t, err)
		require.Len(t, result.Failures, 1)
	})

	t.Run("reports progress for every source", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var events []ingest.ProgressEvent
		progress := func(e ingest.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		}

		_, err := newIndexer(newRecorder()).IndexSources(context.Background(), "demo", []*libdoc.Source{
			{Path: "a.md", Content: "a"},
			{Path: "b.md", Content: " "},
		}, progress)

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, ingest.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, ingest.ProgressCompleted, events[1].Type)
		assert.Equal(t, "a.md", events[1].Path)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, ingest.ProgressSkipped, events[2].Type)
		assert.Equal(t, ingest.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})

	t.Run("stops between documents when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var committed int
		docs := &mock.DocumentService{
			UpsertDocumentFn: func(_ context.Context, u *libdoc.DocumentUpsert) (*libdoc.UpsertResult, error) {
				committed++
				cancel()
				return &libdoc.UpsertResult{Documents: u.Documents()}, nil
			},
		}
		ix := newIndexer(docs)
		ix.Concurrency = 1

		result, err := ix.IndexSources(ctx, "demo", []*libdoc.Source{
			{Path: "a.md", Content: "a"},
			{Path: "b.md", Content: "b"},
			{Path: "c.md", Content: "c"},
		}, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, committed)
		assert.Equal(t, 1, result.Indexed)
	})

	t.Run("requires a library name", func(t *testing.T) {
		t.Parallel()

		_, err := newIndexer(newRecorder()).IndexSources(context.Background(), " ", nil, nil)

		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(err))
	})
}

func TestIndexer_IndexPaths(t *testing.T) {
	t.Parallel()

	t.Run("loads each path", func(t *testing.T) {
		t.Parallel()

		docs := newRecorder()
		ix := newIndexer(docs)
		ix.Loader = &mock.SourceLoader{
			LoadSourceFn: func(_ context.Context, location string) (*libdoc.Source, error) {
				if location == "/missing.md" {
					return nil, libdoc.Errorf(libdoc.ENOTFOUND, "no such file")
				}
				return &libdoc.Source{Path: "docs" + location, Content: "# T\nbody"}, nil
			},
		}

		result, err := ix.IndexPaths(context.Background(), "demo", []string{"/a.md", "/missing.md"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Indexed)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "/missing.md", result.Failures[0].Path)
		assert.Equal(t, "docs/a.md", docs.upserts[0].Path)
	})

	t.Run("requires a loader", func(t *testing.T) {
		t.Parallel()

		_, err := newIndexer(newRecorder()).IndexPaths(context.Background(), "demo", []string{"a.md"}, nil)

		require.Error(t, err)
	})
}
