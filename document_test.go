package libdoc_test

import (
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentUpsert_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *libdoc.DocumentUpsert {
		return &libdoc.DocumentUpsert{
			Library: "react",
			Path:    "intro.md",
			Chunks:  []libdoc.Chunk{{Title: "Intro", Body: "hello"}},
		}
	}

	t.Run("accepts complete upsert", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, valid().Validate())
	})

	t.Run("requires library", func(t *testing.T) {
		t.Parallel()

		u := valid()
		u.Library = " "

		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(u.Validate()))
	})

	t.Run("requires path", func(t *testing.T) {
		t.Parallel()

		u := valid()
		u.Path = ""

		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(u.Validate()))
	})

	t.Run("requires at least one chunk", func(t *testing.T) {
		t.Parallel()

		u := valid()
		u.Chunks = nil

		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(u.Validate()))
	})
}

func TestDocumentUpsert_Documents(t *testing.T) {
	t.Parallel()

	t.Run("single chunk keeps source path", func(t *testing.T) {
		t.Parallel()

		u := &libdoc.DocumentUpsert{
			Library: "react",
			Path:    "intro.md",
			URL:     "https://react.dev/intro",
			Chunks:  []libdoc.Chunk{{Title: "Intro", Body: "# Intro\nbody", StartLine: 1}},
		}

		docs := u.Documents()

		require.Len(t, docs, 1)
		assert.Equal(t, "intro.md", docs[0].Path)
		assert.Equal(t, "intro.md", docs[0].ParentPath)
		assert.Equal(t, 0, docs[0].ChunkIndex)
		assert.Equal(t, 1, docs[0].ChunkCount)
		assert.Equal(t, "https://react.dev/intro", docs[0].URL)
		assert.False(t, docs[0].IsChunk())
	})

	t.Run("multiple chunks get synthetic paths and anchored urls", func(t *testing.T) {
		t.Parallel()

		u := &libdoc.DocumentUpsert{
			Library: "react",
			Path:    "hooks.md",
			URL:     "https://react.dev/hooks",
			Chunks: []libdoc.Chunk{
				{Title: "Hooks", Body: "# Hooks\n", StartLine: 1},
				{Title: "Using State", Heading: "Using State", Body: "## Using State\n", Offset: 8, StartLine: 2},
				{Title: "Effects & Cleanup", Heading: "Effects & Cleanup", Body: "## Effects & Cleanup\n", Offset: 23, StartLine: 3},
			},
		}

		docs := u.Documents()

		require.Len(t, docs, 3)
		assert.Equal(t, []string{"hooks.md#0", "hooks.md#1", "hooks.md#2"},
			[]string{docs[0].Path, docs[1].Path, docs[2].Path})
		assert.Equal(t, "https://react.dev/hooks", docs[0].URL)
		assert.Equal(t, "https://react.dev/hooks#using-state", docs[1].URL)
		assert.Equal(t, "https://react.dev/hooks#effects-cleanup", docs[2].URL)
		for i, doc := range docs {
			assert.Equal(t, "hooks.md", doc.ParentPath)
			assert.Equal(t, "react", doc.Library)
			assert.Equal(t, i, doc.ChunkIndex)
			assert.Equal(t, 3, doc.ChunkCount)
			assert.True(t, doc.IsChunk())
		}
		assert.Equal(t, 8, docs[1].Offset)
		assert.Equal(t, 3, docs[2].StartLine)
	})

	t.Run("chunks without url stay without url", func(t *testing.T) {
		t.Parallel()

		u := &libdoc.DocumentUpsert{
			Library: "react",
			Path:    "a.md",
			Chunks: []libdoc.Chunk{
				{Title: "A", Body: "x"},
				{Title: "B", Heading: "B", Body: "y"},
			},
		}

		docs := u.Documents()

		assert.Empty(t, docs[0].URL)
		assert.Empty(t, docs[1].URL)
	})
}

func TestDocument_DisplayTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Intro", (&libdoc.Document{Title: "Intro", Path: "a.md"}).DisplayTitle())
	assert.Equal(t, "a.md", (&libdoc.Document{Path: "a.md"}).DisplayTitle())
}

func TestJoinChunks(t *testing.T) {
	t.Parallel()

	t.Run("reassembles chunks in index order", func(t *testing.T) {
		t.Parallel()

		// Given the rows of a split file, out of order
		u := &libdoc.DocumentUpsert{
			Library: "react",
			Path:    "hooks.md",
			URL:     "https://react.dev/hooks",
			Chunks: []libdoc.Chunk{
				{Title: "Hooks", Body: "# Hooks\n"},
				{Title: "Using State", Heading: "Using State", Body: "## Using State\n"},
				{Title: "Effects", Heading: "Effects", Body: "## Effects\n"},
			},
		}
		docs := u.Documents()
		docs[0], docs[2] = docs[2], docs[0]

		// When I join them
		doc, err := libdoc.JoinChunks(docs)

		// Then the original file comes back
		require.NoError(t, err)
		assert.Equal(t, "hooks.md", doc.Path)
		assert.Equal(t, "hooks.md", doc.ParentPath)
		assert.Equal(t, "Hooks", doc.Title)
		assert.Equal(t, "https://react.dev/hooks", doc.URL)
		assert.Equal(t, "# Hooks\n## Using State\n## Effects\n", doc.Body)
		assert.False(t, doc.IsChunk())
	})

	t.Run("drops the anchor of a heading first chunk", func(t *testing.T) {
		t.Parallel()

		u := &libdoc.DocumentUpsert{
			Library: "react",
			Path:    "a.md",
			URL:     "https://react.dev/a",
			Chunks: []libdoc.Chunk{
				{Title: "Setup", Heading: "Setup", Body: "## Setup\n"},
				{Title: "Usage", Heading: "Usage", Body: "## Usage\n"},
			},
		}

		doc, err := libdoc.JoinChunks(u.Documents())

		require.NoError(t, err)
		assert.Equal(t, "https://react.dev/a", doc.URL)
	})

	t.Run("single document", func(t *testing.T) {
		t.Parallel()

		doc, err := libdoc.JoinChunks([]*libdoc.Document{
			{Path: "a.md", ParentPath: "a.md", ChunkCount: 1, Title: "A", Body: "a"},
		})

		require.NoError(t, err)
		assert.Equal(t, "a", doc.Body)
	})

	t.Run("missing chunk", func(t *testing.T) {
		t.Parallel()

		_, err := libdoc.JoinChunks([]*libdoc.Document{
			{Path: "a.md#0", ParentPath: "a.md", ChunkIndex: 0, ChunkCount: 3},
			{Path: "a.md#2", ParentPath: "a.md", ChunkIndex: 2, ChunkCount: 3},
		})

		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(err))
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		_, err := libdoc.JoinChunks(nil)

		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(err))
	})
}
