package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/libdoc"
)

// posting is one (term, field) entry of a document.
type posting struct {
	term      string
	field     libdoc.Field
	positions []int
}

// buildPostings tokenizes text into postings for field, in first-occurrence
// order, and returns them with the field's token count.
func buildPostings(text string, field libdoc.Field) ([]posting, int) {
	tokens := libdoc.Tokenize(text)
	index := make(map[string]int)
	var postings []posting
	for _, tok := range tokens {
		i, ok := index[tok.Term]
		if !ok {
			i = len(postings)
			index[tok.Term] = i
			postings = append(postings, posting{term: tok.Term, field: field})
		}
		postings[i].positions = append(postings[i].positions, tok.Position)
	}
	return postings, len(tokens)
}

// indexDocument writes the postings of document id and adds its contribution
// to the term and corpus statistics. It returns the title and body lengths.
func indexDocument(ctx context.Context, tx *sql.Tx, id int64, title, body string) (int, int, error) {
	titlePostings, titleLen := buildPostings(title, libdoc.FieldTitle)
	bodyPostings, bodyLen := buildPostings(body, libdoc.FieldBody)

	for _, p := range append(titlePostings, bodyPostings...) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO postings (term, field, doc_id, freq, positions) VALUES (?, ?, ?, ?, ?)
		`, p.term, int(p.field), id, len(p.positions), encodePositions(p.positions)); err != nil {
			return 0, 0, fmt.Errorf("insert posting: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO term_stats (term, field, df) VALUES (?, ?, 1)
			ON CONFLICT (term, field) DO UPDATE SET df = df + 1
		`, p.term, int(p.field)); err != nil {
			return 0, 0, fmt.Errorf("update term stats: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE documents SET title_len = ?, body_len = ? WHERE id = ?
	`, titleLen, bodyLen, id); err != nil {
		return 0, 0, fmt.Errorf("update field lengths: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE corpus_stats
		SET doc_count = doc_count + 1, title_len_sum = title_len_sum + ?, body_len_sum = body_len_sum + ?
		WHERE id = 1
	`, titleLen, bodyLen); err != nil {
		return 0, 0, fmt.Errorf("update corpus stats: %w", err)
	}
	return titleLen, bodyLen, nil
}

// removeDocuments deletes the documents selected by where, subtracting their
// contribution from the statistics first. It returns the number removed.
func removeDocuments(ctx context.Context, tx *sql.Tx, where string, args ...any) (int, error) {
	selected := `SELECT id FROM documents WHERE ` + where

	var count int
	var titleLen, bodyLen int64
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(title_len), 0), COALESCE(SUM(body_len), 0)
		FROM documents WHERE `+where, args...).Scan(&count, &titleLen, &bodyLen); err != nil {
		return 0, fmt.Errorf("measure documents: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE term_stats SET df = df - agg.n
		FROM (
			SELECT term, field, COUNT(*) AS n FROM postings
			WHERE doc_id IN (`+selected+`)
			GROUP BY term, field
		) AS agg
		WHERE term_stats.term = agg.term AND term_stats.field = agg.field
	`, args...); err != nil {
		return 0, fmt.Errorf("subtract term stats: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM term_stats WHERE df <= 0`); err != nil {
		return 0, fmt.Errorf("prune term stats: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE corpus_stats
		SET doc_count = doc_count - ?, title_len_sum = title_len_sum - ?, body_len_sum = body_len_sum - ?
		WHERE id = 1
	`, count, titleLen, bodyLen); err != nil {
		return 0, fmt.Errorf("subtract corpus stats: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM postings WHERE doc_id IN (`+selected+`)`, args...); err != nil {
		return 0, fmt.Errorf("delete postings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE `+where, args...); err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}
	return count, nil
}

// readStatistics loads the corpus aggregates.
func readStatistics(ctx context.Context, q querier) (*libdoc.Statistics, error) {
	var stats libdoc.Statistics
	if err := q.QueryRowContext(ctx, `
		SELECT doc_count, title_len_sum, body_len_sum, (SELECT COUNT(*) FROM term_stats)
		FROM corpus_stats WHERE id = 1
	`).Scan(&stats.Documents, &stats.TitleTokens, &stats.BodyTokens, &stats.Terms); err != nil {
		return nil, fmt.Errorf("read corpus stats: %w", err)
	}
	return &stats, nil
}
