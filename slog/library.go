package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/libdoc"
)

// Ensure LoggingLibraryService implements libdoc.LibraryService.
var _ libdoc.LibraryService = (*LoggingLibraryService)(nil)

// LoggingLibraryService wraps a LibraryService with logging.
type LoggingLibraryService struct {
	next   libdoc.LibraryService
	logger *slog.Logger
}

// NewLoggingLibraryService creates a new LoggingLibraryService.
func NewLoggingLibraryService(next libdoc.LibraryService, logger *slog.Logger) *LoggingLibraryService {
	return &LoggingLibraryService{next: next, logger: logger}
}

// FindLibraries delegates to the wrapped service.
func (s *LoggingLibraryService) FindLibraries(ctx context.Context) (libs []*libdoc.Library, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find libraries",
			"count", len(libs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLibraries(ctx)
}

// FindLibrary delegates to the wrapped service.
func (s *LoggingLibraryService) FindLibrary(ctx context.Context, name string) (lib *libdoc.Library, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find library",
			"library", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLibrary(ctx, name)
}

// DeleteLibrary delegates to the wrapped service and logs the removal.
func (s *LoggingLibraryService) DeleteLibrary(ctx context.Context, name string) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete library",
			"library", name,
			"documents", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteLibrary(ctx, name)
}
