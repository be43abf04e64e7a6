package goldmark_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_Chunk(t *testing.T) {
	t.Parallel()

	t.Run("returns whole body when under threshold", func(t *testing.T) {
		t.Parallel()

		body := "# Guide\n\n## One\ntext\n## Two\ntext"

		chunks := goldmark.NewChunker().Chunk("Guide", body, 1000)

		require.Len(t, chunks, 1)
		assert.Equal(t, libdoc.Chunk{Title: "Guide", Body: body, StartLine: 1}, chunks[0])
	})

	t.Run("threshold of zero disables splitting", func(t *testing.T) {
		t.Parallel()

		chunks := goldmark.NewChunker().Chunk("Guide", "intro\n## One\na\n## Two\nb", 0)

		assert.Len(t, chunks, 1)
	})

	t.Run("splits at level-2 headings", func(t *testing.T) {
		t.Parallel()

		body := "# Guide\nIntro text.\n\n## Install\nRun it.\n\n## Usage\nUse it.\n"

		chunks := goldmark.NewChunker().Chunk("Guide", body, 10)

		require.Len(t, chunks, 3)
		assert.Equal(t, "Guide", chunks[0].Title)
		assert.Empty(t, chunks[0].Heading)
		assert.Equal(t, "# Guide\nIntro text.\n\n", chunks[0].Body)
		assert.Equal(t, 0, chunks[0].Offset)
		assert.Equal(t, 1, chunks[0].StartLine)

		assert.Equal(t, "Install", chunks[1].Title)
		assert.Equal(t, "Install", chunks[1].Heading)
		assert.Equal(t, "## Install\nRun it.\n\n", chunks[1].Body)
		assert.Equal(t, strings.Index(body, "## Install"), chunks[1].Offset)
		assert.Equal(t, 4, chunks[1].StartLine)

		assert.Equal(t, "Usage", chunks[2].Title)
		assert.Equal(t, "## Usage\nUse it.\n", chunks[2].Body)
		assert.Equal(t, 7, chunks[2].StartLine)
	})

	t.Run("concatenated chunks reproduce the body", func(t *testing.T) {
		t.Parallel()

		body := "Preface.\n## A\n" + strings.Repeat("alpha ", 50) + "\n## B\nbeta\n### B.1\nnested\n## C\ngamma"

		chunks := goldmark.NewChunker().Chunk("Doc", body, 20)

		var sb strings.Builder
		for _, c := range chunks {
			sb.WriteString(c.Body)
		}
		assert.Equal(t, body, sb.String())
		assert.Len(t, chunks, 4)
	})

	t.Run("keeps level-3 headings inside their section", func(t *testing.T) {
		t.Parallel()

		body := "## A\na\n### A.1\nmore\n## B\nb"

		chunks := goldmark.NewChunker().Chunk("Doc", body, 5)

		require.Len(t, chunks, 2)
		assert.Equal(t, "## A\na\n### A.1\nmore\n", chunks[0].Body)
	})

	t.Run("merges whitespace-only preamble into first chunk", func(t *testing.T) {
		t.Parallel()

		body := "\n\n## A\naaaa\n## B\nbbbb"

		chunks := goldmark.NewChunker().Chunk("Doc", body, 5)

		require.Len(t, chunks, 2)
		assert.Equal(t, "A", chunks[0].Title)
		assert.Equal(t, "\n\n## A\naaaa\n", chunks[0].Body)
		assert.Equal(t, 0, chunks[0].Offset)
		assert.Equal(t, 1, chunks[0].StartLine)
	})

	t.Run("oversized body without headings stays one chunk", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("word ", 100)

		chunks := goldmark.NewChunker().Chunk("Big", body, 10)

		require.Len(t, chunks, 1)
		assert.Equal(t, body, chunks[0].Body)
		assert.Equal(t, "Big", chunks[0].Title)
	})

	t.Run("ignores headings inside fenced code", func(t *testing.T) {
		t.Parallel()

		body := "## Real\n```md\n## Not a heading\n```\ntext text text"

		chunks := goldmark.NewChunker().Chunk("Doc", body, 5)

		require.Len(t, chunks, 1)
		assert.Equal(t, "Real", chunks[0].Title)
		assert.Equal(t, body, chunks[0].Body)
	})

	t.Run("measures offsets in characters", func(t *testing.T) {
		t.Parallel()

		body := "héllo wörld\n## Next\nmore"

		chunks := goldmark.NewChunker().Chunk("Doc", body, 5)

		require.Len(t, chunks, 2)
		assert.Equal(t, 12, chunks[1].Offset)
		assert.Equal(t, 2, chunks[1].StartLine)
	})
}
