package mock

import (
	"context"

	"github.com/fwojciec/libdoc"
)

var _ libdoc.StatisticsService = (*StatisticsService)(nil)

// StatisticsService is a mock implementation of libdoc.StatisticsService.
type StatisticsService struct {
	StatisticsFn        func(ctx context.Context) (*libdoc.Statistics, error)
	RebuildStatisticsFn func(ctx context.Context) (*libdoc.StatisticsRepair, error)
	RebuildIndexFn      func(ctx context.Context) (int, error)
}

func (s *StatisticsService) Statistics(ctx context.Context) (*libdoc.Statistics, error) {
	return s.StatisticsFn(ctx)
}

func (s *StatisticsService) RebuildStatistics(ctx context.Context) (*libdoc.StatisticsRepair, error) {
	return s.RebuildStatisticsFn(ctx)
}

func (s *StatisticsService) RebuildIndex(ctx context.Context) (int, error) {
	return s.RebuildIndexFn(ctx)
}
