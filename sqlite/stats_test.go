package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsService_Statistics(t *testing.T) {
	t.Parallel()

	t.Run("tracks corpus totals incrementally", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		upsert(t, db, "demo", "a.md", "Alpha Guide", "one two three")
		upsert(t, db, "demo", "b.md", "Beta", "one")

		stats, err := sqlite.NewStatisticsService(db).Statistics(context.Background())

		require.NoError(t, err)
		assert.Equal(t, libdoc.Statistics{Documents: 2, TitleTokens: 3, BodyTokens: 4, Terms: 6}, *stats)
		assert.InDelta(t, 2.0, stats.AvgFieldLen(libdoc.FieldBody), 1e-9)
	})

	t.Run("is empty for a new index", func(t *testing.T) {
		t.Parallel()

		stats, err := sqlite.NewStatisticsService(setupTestDB(t)).Statistics(context.Background())

		require.NoError(t, err)
		assert.Equal(t, libdoc.Statistics{}, *stats)
	})
}

func TestStatisticsService_RebuildStatistics(t *testing.T) {
	t.Parallel()

	t.Run("reports no drift for a consistent index", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		upsert(t, db, "demo", "a.md", "A", "alpha beta")
		upsert(t, db, "demo", "a.md", "A", "alpha gamma")
		upsert(t, db, "demo", "b.md", "B", "beta")

		repair, err := sqlite.NewStatisticsService(db).RebuildStatistics(context.Background())

		require.NoError(t, err)
		assert.False(t, repair.Drifted)
		assert.Zero(t, repair.TermsCorrected)
		assert.Equal(t, repair.Before, repair.After)
	})

	t.Run("repairs corrupted aggregates", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		upsert(t, db, "demo", "a.md", "A", "alpha beta")
		upsert(t, db, "demo", "b.md", "B", "beta")
		for _, stmt := range []string{
			"UPDATE term_stats SET df = 7 WHERE term = 'beta'",
			"INSERT INTO term_stats (term, field, df) VALUES ('ghost', 1, 3)",
			"UPDATE corpus_stats SET doc_count = 9, body_len_sum = 100",
		} {
			_, err := db.ExecContext(ctx, stmt)
			require.NoError(t, err)
		}

		repair, err := sqlite.NewStatisticsService(db).RebuildStatistics(ctx)

		require.NoError(t, err)
		assert.True(t, repair.Drifted)
		assert.Equal(t, 2, repair.TermsCorrected)
		assert.Equal(t, 9, repair.Before.Documents)
		assert.Equal(t, libdoc.Statistics{Documents: 2, TitleTokens: 2, BodyTokens: 3, Terms: 4}, repair.After)
		assert.Equal(t, 2, countRows(t, db, "SELECT df FROM term_stats WHERE term = 'beta' AND field = 1"))
		assert.Equal(t, 0, countRows(t, db, "SELECT COUNT(*) FROM term_stats WHERE term = 'ghost'"))
	})
}

func TestStatisticsService_RebuildIndex(t *testing.T) {
	t.Parallel()

	t.Run("restores postings from stored documents", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		upsert(t, db, "demo", "a.md", "Alpha", "websockets guide")
		upsert(t, db, "demo", "b.md", "Beta", "hooks guide")
		_, err := db.ExecContext(ctx, "DELETE FROM postings")
		require.NoError(t, err)

		n, err := sqlite.NewStatisticsService(db).RebuildIndex(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		results, err := sqlite.NewSearchService(db).Search(ctx, "websockets", libdoc.SearchOptions{Limit: 10})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "a.md", results[0].Document.Path)

		repair, err := sqlite.NewStatisticsService(db).RebuildStatistics(ctx)
		require.NoError(t, err)
		assert.False(t, repair.Drifted)
	})

	t.Run("handles an empty index", func(t *testing.T) {
		t.Parallel()

		n, err := sqlite.NewStatisticsService(setupTestDB(t)).RebuildIndex(context.Background())

		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
