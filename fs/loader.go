package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/libdoc"
)

// Ensure Loader implements libdoc.SourceLoader at compile time.
var _ libdoc.SourceLoader = (*Loader)(nil)

// Loader reads sources from local files.
type Loader struct {
	// StripPrefix is removed from file paths to form document paths.
	StripPrefix string

	// BaseURL, when set, is combined with document paths to form page URLs.
	BaseURL string
}

// NewLoader creates a new Loader.
func NewLoader(stripPrefix, baseURL string) *Loader {
	return &Loader{StripPrefix: stripPrefix, BaseURL: baseURL}
}

// LoadSource reads the file at location.
func (l *Loader) LoadSource(ctx context.Context, location string) (*libdoc.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(location)
	if errors.Is(err, os.ErrNotExist) {
		return nil, libdoc.Errorf(libdoc.ENOTFOUND, "file %s not found", location)
	}
	if err != nil {
		return nil, err
	}

	p := StripPrefix(location, l.StripPrefix)
	src := &libdoc.Source{
		Path:    p,
		Content: string(data),
		URL:     PathToURL(l.BaseURL, p),
		Format:  libdoc.FormatMarkdown,
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".html", ".htm":
		src.Format = libdoc.FormatHTML
	}
	return src, nil
}
