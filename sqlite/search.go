package sqlite

import (
	"context"
	"fmt"
	"sort"

	"github.com/fwojciec/libdoc"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Compile-time interface verification.
var _ libdoc.SearchService = (*SearchService)(nil)

const (
	// expansionCacheSize bounds the number of cached prefix expansions.
	expansionCacheSize = 1024

	// termBatchSize bounds the number of bound parameters per postings query.
	termBatchSize = 500
)

// expansionKey scopes a cached prefix expansion to one index generation, so
// any committed write invalidates it.
type expansionKey struct {
	generation uint64
	prefix     string
}

// SearchService implements libdoc.SearchService using SQLite.
type SearchService struct {
	db         *DB
	expansions *lru.Cache[expansionKey, []string]
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	expansions, err := lru.New[expansionKey, []string](expansionCacheSize)
	if err != nil {
		panic(err)
	}
	return &SearchService{db: db, expansions: expansions}
}

// hit accumulates the score of one document while answering a query.
type hit struct {
	score float64
	terms map[string]struct{}
}

// fieldKey identifies one field of one document.
type fieldKey struct {
	docID int64
	field libdoc.Field
}

// Search answers query with OR semantics, summing field-boosted BM25 scores
// over the matched clauses.
func (s *SearchService) Search(ctx context.Context, query string, opts libdoc.SearchOptions) ([]*libdoc.SearchResult, error) {
	if opts.Limit <= 0 {
		return nil, libdoc.Errorf(libdoc.EINVALID, "limit must be positive, got %d", opts.Limit)
	}
	clauses, err := libdoc.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	results := []*libdoc.SearchResult{}
	err = s.db.view(func() error {
		var libraryID int64
		if opts.Library != "" {
			id, err := findLibraryID(ctx, s.db, opts.Library)
			if err != nil {
				return err
			}
			if id == 0 {
				return libdoc.Errorf(libdoc.ENOTFOUND, "library %q not found", opts.Library)
			}
			libraryID = id
		}
		if len(clauses) == 0 {
			return nil
		}

		stats, err := readStatistics(ctx, s.db)
		if err != nil {
			return err
		}
		if stats.Documents == 0 {
			return nil
		}

		hits := make(map[int64]*hit)
		for _, clause := range clauses {
			terms := []string{clause.Term}
			if clause.Prefix {
				if terms, err = s.expand(ctx, clause.Term); err != nil {
					return err
				}
			}
			if err := s.scoreClause(ctx, terms, libraryID, stats, hits); err != nil {
				return err
			}
		}

		candidates := make([]libdoc.Candidate, 0, len(hits))
		for id, h := range hits {
			matched := make([]string, 0, len(h.terms))
			for term := range h.terms {
				matched = append(matched, term)
			}
			sort.Strings(matched)
			candidates = append(candidates, libdoc.Candidate{DocumentID: id, Score: h.score, MatchedTerms: matched})
		}
		ranked := libdoc.Rank(candidates, opts.Limit)

		docs, err := s.documents(ctx, ranked)
		if err != nil {
			return err
		}
		for _, c := range ranked {
			doc, ok := docs[c.DocumentID]
			if !ok {
				continue
			}
			snippet := libdoc.BuildSnippet(doc.Body, c.MatchedTerms, opts.Snippet)
			doc.Body = ""
			results = append(results, &libdoc.SearchResult{
				Document:     doc,
				Score:        c.Score,
				MatchedTerms: c.MatchedTerms,
				Snippet:      snippet,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// expand returns the indexed terms starting with prefix. Terms consist of
// letters and digits only, so prefix never contains GLOB metacharacters.
func (s *SearchService) expand(ctx context.Context, prefix string) ([]string, error) {
	key := expansionKey{generation: s.db.Generation(), prefix: prefix}
	if terms, ok := s.expansions.Get(key); ok {
		return terms, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT term FROM term_stats WHERE term GLOB ? ORDER BY term
	`, prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("expand prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.expansions.Add(key, terms)
	return terms, nil
}

// scoreClause adds one clause's contribution to hits. When a clause expands
// to several terms, each document field contributes only its best term.
func (s *SearchService) scoreClause(ctx context.Context, terms []string, libraryID int64, stats *libdoc.Statistics, hits map[int64]*hit) error {
	best := make(map[fieldKey]float64)
	matched := make(map[int64][]string)

	for start := 0; start < len(terms); start += termBatchSize {
		batch := terms[start:min(start+termBatchSize, len(terms))]

		query := `
			SELECT p.term, p.field, p.doc_id, p.freq, s.df, d.title_len, d.body_len
			FROM postings p
			JOIN term_stats s ON s.term = p.term AND s.field = p.field
			JOIN documents d ON d.id = p.doc_id
			WHERE p.term IN (` + placeholders(len(batch)) + `)`
		args := make([]any, 0, len(batch)+1)
		for _, term := range batch {
			args = append(args, term)
		}
		if libraryID != 0 {
			query += " AND d.library_id = ?"
			args = append(args, libraryID)
		}

		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("read postings: %w", err)
		}
		for rows.Next() {
			var term string
			var field libdoc.Field
			var docID int64
			var freq, df, titleLen, bodyLen int
			if err := rows.Scan(&term, &field, &docID, &freq, &df, &titleLen, &bodyLen); err != nil {
				rows.Close()
				return err
			}

			fieldLen := bodyLen
			if field == libdoc.FieldTitle {
				fieldLen = titleLen
			}
			score := libdoc.BM25(float64(freq), float64(fieldLen), stats.AvgFieldLen(field), df, stats.Documents) * field.Boost()

			key := fieldKey{docID: docID, field: field}
			if score > best[key] {
				best[key] = score
			}
			matched[docID] = append(matched[docID], term)
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}
	}

	for key, score := range best {
		h := hits[key.docID]
		if h == nil {
			h = &hit{terms: make(map[string]struct{})}
			hits[key.docID] = h
		}
		h.score += score
	}
	for docID, terms := range matched {
		h := hits[docID]
		if h == nil {
			h = &hit{terms: make(map[string]struct{})}
			hits[docID] = h
		}
		for _, term := range terms {
			h.terms[term] = struct{}{}
		}
	}
	return nil
}

// documents loads the ranked documents with their bodies, keyed by id.
func (s *SearchService) documents(ctx context.Context, ranked []libdoc.Candidate) (map[int64]*libdoc.Document, error) {
	docs := make(map[int64]*libdoc.Document, len(ranked))
	if len(ranked) == 0 {
		return docs, nil
	}

	args := make([]any, len(ranked))
	for i, c := range ranked {
		args[i] = c.DocumentID
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+documentColumns+`, d.body
		FROM documents d JOIN libraries l ON l.id = d.library_id
		WHERE d.id IN (`+placeholders(len(args))+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		doc, err := scanDocument(rows, true)
		if err != nil {
			return nil, err
		}
		docs[doc.ID] = doc
	}
	return docs, rows.Err()
}
