package mock

import (
	"context"

	"github.com/fwojciec/libdoc"
)

var _ libdoc.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of libdoc.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts libdoc.SearchOptions) ([]*libdoc.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts libdoc.SearchOptions) ([]*libdoc.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
