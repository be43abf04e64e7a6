package libdoc

import "context"

// Statistics holds the corpus-wide aggregates BM25 scoring depends on.
type Statistics struct {
	Documents   int   `json:"documents"`
	TitleTokens int64 `json:"titleTokens"`
	BodyTokens  int64 `json:"bodyTokens"`

	// Terms is the number of distinct (term, field) pairs in the index.
	Terms int `json:"terms"`
}

// AvgFieldLen returns the average token count of field across the corpus.
func (s Statistics) AvgFieldLen(f Field) float64 {
	if s.Documents == 0 {
		return 0
	}
	if f == FieldTitle {
		return float64(s.TitleTokens) / float64(s.Documents)
	}
	return float64(s.BodyTokens) / float64(s.Documents)
}

// StatisticsRepair reports the outcome of recomputing the index statistics.
type StatisticsRepair struct {
	Before Statistics `json:"before"`
	After  Statistics `json:"after"`

	// Drifted is true when the incrementally maintained statistics did not
	// match the recomputed ones, including per-term document frequencies.
	Drifted bool `json:"drifted"`

	// TermsCorrected is the number of (term, field) document frequencies
	// that were wrong or missing.
	TermsCorrected int `json:"termsCorrected"`
}

// StatisticsService maintains the index aggregates.
type StatisticsService interface {
	// Statistics returns the current corpus statistics.
	Statistics(ctx context.Context) (*Statistics, error)

	// RebuildStatistics recomputes document frequencies and corpus totals
	// from the stored postings and documents.
	RebuildStatistics(ctx context.Context) (*StatisticsRepair, error)

	// RebuildIndex re-tokenizes every stored document, rewrites all postings
	// and then rebuilds the statistics. Returns the number of documents
	// reindexed.
	RebuildIndex(ctx context.Context) (int, error)
}
