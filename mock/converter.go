package mock

import "github.com/fwojciec/libdoc"

var _ libdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of libdoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ libdoc.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of libdoc.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (string, error)
}

func (e *ContentExtractor) ExtractContent(html string) (string, error) {
	return e.ExtractContentFn(html)
}
