package mock

import "github.com/fwojciec/libdoc"

var (
	_ libdoc.Chunker        = (*Chunker)(nil)
	_ libdoc.TitleExtractor = (*TitleExtractor)(nil)
)

// Chunker is a mock implementation of libdoc.Chunker.
type Chunker struct {
	ChunkFn func(title, body string, threshold int) []libdoc.Chunk
}

func (c *Chunker) Chunk(title, body string, threshold int) []libdoc.Chunk {
	return c.ChunkFn(title, body, threshold)
}

// TitleExtractor is a mock implementation of libdoc.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(raw, fallbackName string) (string, string)
}

func (e *TitleExtractor) ExtractTitle(raw, fallbackName string) (string, string) {
	return e.ExtractTitleFn(raw, fallbackName)
}
