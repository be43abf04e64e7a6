// Package slog provides logging decorators for the libdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/libdoc"
)

// Ensure LoggingDocumentService implements libdoc.DocumentService.
var _ libdoc.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging.
type LoggingDocumentService struct {
	next   libdoc.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next libdoc.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// UpsertDocument delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) UpsertDocument(ctx context.Context, upsert *libdoc.DocumentUpsert) (result *libdoc.UpsertResult, err error) {
	defer func(begin time.Time) {
		var unchanged bool
		if result != nil {
			unchanged = result.Unchanged
		}
		s.logger.Info("upsert document",
			"library", upsert.Library,
			"path", upsert.Path,
			"chunks", len(upsert.Chunks),
			"unchanged", unchanged,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertDocument(ctx, upsert)
}

// FindDocument delegates to the wrapped service and logs the lookup.
func (s *LoggingDocumentService) FindDocument(ctx context.Context, library string, lookup libdoc.Lookup) (doc *libdoc.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find document",
			"library", library,
			"lookup", lookup.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocument(ctx, library, lookup)
}

// FindDocuments delegates to the wrapped service and logs the result count.
func (s *LoggingDocumentService) FindDocuments(ctx context.Context, filter libdoc.DocumentFilter) (docs []*libdoc.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find documents",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocuments(ctx, filter)
}
