package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/libdoc"
)

// Ensure LoggingStatisticsService implements libdoc.StatisticsService.
var _ libdoc.StatisticsService = (*LoggingStatisticsService)(nil)

// LoggingStatisticsService wraps a StatisticsService with logging.
type LoggingStatisticsService struct {
	next   libdoc.StatisticsService
	logger *slog.Logger
}

// NewLoggingStatisticsService creates a new LoggingStatisticsService.
func NewLoggingStatisticsService(next libdoc.StatisticsService, logger *slog.Logger) *LoggingStatisticsService {
	return &LoggingStatisticsService{next: next, logger: logger}
}

// Statistics delegates to the wrapped service.
func (s *LoggingStatisticsService) Statistics(ctx context.Context) (*libdoc.Statistics, error) {
	return s.next.Statistics(ctx)
}

// RebuildStatistics delegates to the wrapped service and logs any drift.
func (s *LoggingStatisticsService) RebuildStatistics(ctx context.Context) (repair *libdoc.StatisticsRepair, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if repair != nil {
			attrs = append(attrs, "drifted", repair.Drifted, "terms_corrected", repair.TermsCorrected)
		}
		s.logger.Info("rebuild statistics", attrs...)
	}(time.Now())
	return s.next.RebuildStatistics(ctx)
}

// RebuildIndex delegates to the wrapped service and logs the document count.
func (s *LoggingStatisticsService) RebuildIndex(ctx context.Context) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("rebuild index",
			"documents", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RebuildIndex(ctx)
}
