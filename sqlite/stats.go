package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/libdoc"
)

// Compile-time interface verification.
var _ libdoc.StatisticsService = (*StatisticsService)(nil)

// rebuildBatchSize is the number of documents re-tokenized per query.
const rebuildBatchSize = 256

// StatisticsService implements libdoc.StatisticsService using SQLite.
type StatisticsService struct {
	db *DB
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(db *DB) *StatisticsService {
	return &StatisticsService{db: db}
}

// Statistics returns the incrementally maintained corpus statistics.
func (s *StatisticsService) Statistics(ctx context.Context) (*libdoc.Statistics, error) {
	var stats *libdoc.Statistics
	err := s.db.view(func() error {
		var err error
		stats, err = readStatistics(ctx, s.db)
		return err
	})
	return stats, err
}

// RebuildStatistics recomputes document frequencies and corpus totals from
// the stored postings and documents, reporting any drift it corrected.
func (s *StatisticsService) RebuildStatistics(ctx context.Context) (*libdoc.StatisticsRepair, error) {
	var repair *libdoc.StatisticsRepair
	err := s.db.update(ctx, func(tx *sql.Tx) error {
		var err error
		repair, err = rebuildStatistics(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return repair, nil
}

// RebuildIndex re-tokenizes every document, rewrites all postings and then
// recomputes the statistics.
func (s *StatisticsService) RebuildIndex(ctx context.Context) (int, error) {
	var count int
	err := s.db.update(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM postings`,
			`DELETE FROM term_stats`,
			`UPDATE corpus_stats SET doc_count = 0, title_len_sum = 0, body_len_sum = 0 WHERE id = 1`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("reset index: %w", err)
			}
		}

		var lastID int64
		for {
			batch, err := documentTexts(ctx, tx, lastID)
			if err != nil {
				return err
			}
			if len(batch) == 0 {
				break
			}
			for _, doc := range batch {
				if err := ctx.Err(); err != nil {
					return err
				}
				if _, _, err := indexDocument(ctx, tx, doc.ID, doc.Title, doc.Body); err != nil {
					return err
				}
				lastID = doc.ID
				count++
			}
		}

		_, err := rebuildStatistics(ctx, tx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// documentTexts returns the next batch of documents after id afterID.
func documentTexts(ctx context.Context, tx *sql.Tx, afterID int64) ([]libdoc.Document, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, title, body FROM documents WHERE id > ? ORDER BY id LIMIT ?
	`, afterID, rebuildBatchSize)
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}
	defer rows.Close()

	var docs []libdoc.Document
	for rows.Next() {
		var doc libdoc.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Body); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func rebuildStatistics(ctx context.Context, tx *sql.Tx) (*libdoc.StatisticsRepair, error) {
	before, err := readStatistics(ctx, tx)
	if err != nil {
		return nil, err
	}

	var corrected int
	if err := tx.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM (
				SELECT p.term, p.field, COUNT(*) AS n FROM postings p GROUP BY p.term, p.field
			) AS a
			LEFT JOIN term_stats s ON s.term = a.term AND s.field = a.field
			WHERE s.df IS NULL OR s.df != a.n)
			+
			(SELECT COUNT(*) FROM term_stats s
			WHERE NOT EXISTS (SELECT 1 FROM postings p WHERE p.term = s.term AND p.field = s.field))
	`).Scan(&corrected); err != nil {
		return nil, fmt.Errorf("compare term stats: %w", err)
	}

	for _, stmt := range []string{
		`DELETE FROM term_stats`,
		`INSERT INTO term_stats (term, field, df) SELECT term, field, COUNT(*) FROM postings GROUP BY term, field`,
		`UPDATE corpus_stats SET
			doc_count = (SELECT COUNT(*) FROM documents),
			title_len_sum = (SELECT COALESCE(SUM(title_len), 0) FROM documents),
			body_len_sum = (SELECT COALESCE(SUM(body_len), 0) FROM documents)
		WHERE id = 1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("rebuild statistics: %w", err)
		}
	}

	after, err := readStatistics(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &libdoc.StatisticsRepair{
		Before:         *before,
		After:          *after,
		Drifted:        *before != *after || corrected > 0,
		TermsCorrected: corrected,
	}, nil
}
