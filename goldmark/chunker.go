package goldmark

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/libdoc"
)

var _ libdoc.Chunker = (*Chunker)(nil)

// Chunker splits oversized documents at their level-2 headings.
type Chunker struct{}

// NewChunker creates a new Chunker.
func NewChunker() *Chunker {
	return &Chunker{}
}

// Chunk splits body into heading-bounded chunks when it is longer than
// threshold characters. Splitting is a single pass: a chunk that is still
// oversized is kept whole, and a body without level-2 headings is returned
// as one chunk.
func (c *Chunker) Chunk(title, body string, threshold int) []libdoc.Chunk {
	whole := []libdoc.Chunk{{Title: title, Body: body, StartLine: 1}}
	if threshold <= 0 || utf8.RuneCountInString(body) <= threshold {
		return whole
	}

	hs := headings([]byte(body), 2)
	if len(hs) == 0 {
		return whole
	}

	var chunks []libdoc.Chunk
	if preamble := body[:hs[0].Start]; strings.TrimSpace(preamble) != "" {
		chunks = append(chunks, newChunk(body, title, "", 0, hs[0].Start))
	} else {
		hs[0].Start = 0
	}

	for i, h := range hs {
		end := len(body)
		if i+1 < len(hs) {
			end = hs[i+1].Start
		}
		chunkTitle := h.Text
		if chunkTitle == "" {
			chunkTitle = title
		}
		chunks = append(chunks, newChunk(body, chunkTitle, h.Text, h.Start, end))
	}
	return chunks
}

func newChunk(body, title, heading string, start, end int) libdoc.Chunk {
	return libdoc.Chunk{
		Title:     title,
		Heading:   heading,
		Body:      body[start:end],
		Offset:    utf8.RuneCountInString(body[:start]),
		StartLine: strings.Count(body[:start], "\n") + 1,
	}
}
