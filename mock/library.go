package mock

import (
	"context"

	"github.com/fwojciec/libdoc"
)

var _ libdoc.LibraryService = (*LibraryService)(nil)

// LibraryService is a mock implementation of libdoc.LibraryService.
type LibraryService struct {
	FindLibrariesFn func(ctx context.Context) ([]*libdoc.Library, error)
	FindLibraryFn   func(ctx context.Context, name string) (*libdoc.Library, error)
	DeleteLibraryFn func(ctx context.Context, name string) (int, error)
}

func (s *LibraryService) FindLibraries(ctx context.Context) ([]*libdoc.Library, error) {
	return s.FindLibrariesFn(ctx)
}

func (s *LibraryService) FindLibrary(ctx context.Context, name string) (*libdoc.Library, error) {
	return s.FindLibraryFn(ctx, name)
}

func (s *LibraryService) DeleteLibrary(ctx context.Context, name string) (int, error) {
	return s.DeleteLibraryFn(ctx, name)
}
