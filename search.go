package libdoc

import (
	"context"
	"math"
	"sort"
	"strings"
)

// DefaultSearchLimit is the number of results returned when no limit is given.
const DefaultSearchLimit = 10

// BM25 parameters.
const (
	BM25K1 = 1.2
	BM25B  = 0.75
)

// Field identifies the document field a posting belongs to.
type Field int

// Indexed fields.
const (
	FieldTitle Field = iota
	FieldBody
)

// String returns the field name.
func (f Field) String() string {
	if f == FieldTitle {
		return "title"
	}
	return "body"
}

// Boost returns the multiplicative weight of the field's score contribution.
// Title matches dominate ranking.
func (f Field) Boost() float64 {
	if f == FieldTitle {
		return 10
	}
	return 1
}

// Clause is one term of a parsed query. Prefix clauses match every indexed
// term that starts with Term.
type Clause struct {
	Term   string
	Prefix bool
}

// String returns the clause in query syntax.
func (c Clause) String() string {
	if c.Prefix {
		return c.Term + "*"
	}
	return c.Term
}

// ParseQuery splits a query on whitespace into clauses combined with OR
// semantics. A token ending in '*' is a prefix clause. Tokens are normalized
// the same way indexed text is, so "Web-Sockets" yields the clauses "web" and
// "sockets". An empty query yields no clauses and no error.
func ParseQuery(query string) ([]Clause, error) {
	var clauses []Clause
	seen := make(map[Clause]struct{})

	for _, word := range strings.Fields(query) {
		prefix := strings.HasSuffix(word, "*")
		word = strings.TrimRight(word, "*")
		if prefix && word == "" {
			return nil, Errorf(EINVALID, "prefix search needs at least one character before '*'")
		}

		terms := Terms(word)
		for i, term := range terms {
			c := Clause{Term: term, Prefix: prefix && i == len(terms)-1}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			clauses = append(clauses, c)
		}
	}

	return clauses, nil
}

// BM25 scores one term in one field of one document.
// tf is the term frequency in the field, fieldLen the field's token count,
// avgFieldLen the corpus-wide average for the field, df the number of
// documents containing the term in the field and n the corpus size.
func BM25(tf, fieldLen, avgFieldLen float64, df, n int) float64 {
	if tf <= 0 || n <= 0 || df <= 0 {
		return 0
	}
	idf := math.Log(1 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))

	norm := 1.0
	if avgFieldLen > 0 {
		norm = 1 - BM25B + BM25B*fieldLen/avgFieldLen
	}
	return idf * (tf * (BM25K1 + 1)) / (tf + BM25K1*norm)
}

// Candidate is a scored document produced while answering a query.
type Candidate struct {
	DocumentID   int64
	Score        float64
	MatchedTerms []string
}

// Rank sorts candidates by descending score with ties broken by ascending
// document id, removes duplicate ids (keeping the best score) and truncates
// the result to limit when limit > 0.
func Rank(candidates []Candidate, limit int) []Candidate {
	best := make(map[int64]int, len(candidates))
	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if i, ok := best[c.DocumentID]; ok {
			if c.Score > ranked[i].Score {
				ranked[i] = c
			}
			continue
		}
		best[c.DocumentID] = len(ranked)
		ranked = append(ranked, c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].DocumentID < ranked[j].DocumentID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// SearchService provides ranked keyword search over indexed documents.
type SearchService interface {
	// Search returns documents matching any clause of query, best first.
	// Returns EINVALID for a malformed query or non-positive limit and
	// ENOTFOUND when filtering by an unknown library.
	Search(ctx context.Context, query string, opts SearchOptions) ([]*SearchResult, error)
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Restrict results to one library. Empty searches every library.
	Library string `json:"library,omitempty"`

	// Maximum number of results to return. Must be positive.
	Limit int `json:"limit"`

	// Snippet configures excerpt extraction. Zero values use the defaults.
	Snippet SnippetOptions `json:"-"`
}

// SearchResult represents a ranked search hit.
type SearchResult struct {
	Document     *Document `json:"document"`
	Score        float64   `json:"score"`
	MatchedTerms []string  `json:"matchedTerms"`
	Snippet      string    `json:"snippet"`
}
