package mock

import (
	"context"

	"github.com/fwojciec/libdoc"
)

var _ libdoc.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of libdoc.DocumentService.
type DocumentService struct {
	UpsertDocumentFn func(ctx context.Context, upsert *libdoc.DocumentUpsert) (*libdoc.UpsertResult, error)
	FindDocumentFn   func(ctx context.Context, library string, lookup libdoc.Lookup) (*libdoc.Document, error)
	FindDocumentsFn  func(ctx context.Context, filter libdoc.DocumentFilter) ([]*libdoc.Document, error)
}

func (s *DocumentService) UpsertDocument(ctx context.Context, upsert *libdoc.DocumentUpsert) (*libdoc.UpsertResult, error) {
	return s.UpsertDocumentFn(ctx, upsert)
}

func (s *DocumentService) FindDocument(ctx context.Context, library string, lookup libdoc.Lookup) (*libdoc.Document, error) {
	return s.FindDocumentFn(ctx, library, lookup)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter libdoc.DocumentFilter) ([]*libdoc.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}
