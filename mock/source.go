package mock

import (
	"context"

	"github.com/fwojciec/libdoc"
)

var _ libdoc.SourceLoader = (*SourceLoader)(nil)

// SourceLoader is a mock implementation of libdoc.SourceLoader.
type SourceLoader struct {
	LoadSourceFn func(ctx context.Context, location string) (*libdoc.Source, error)
}

func (l *SourceLoader) LoadSource(ctx context.Context, location string) (*libdoc.Source, error) {
	return l.LoadSourceFn(ctx, location)
}
