// Package ranker merges index results, applies the relevance re-check and
// reorders passages for extraction.
package ranker

import (
	"sort"

	"advisor/internal/domain"
)

const (
	defaultMinSimilarity = 0.5
	defaultLimit         = 3
)

// Ranker filters threshold-passed index results down to the passages worth
// extracting from. The similarity re-check is stricter than, and independent
// of, the index's own distance threshold.
type Ranker struct {
	minSimilarity float64
	limit         int
}

// New creates a ranker. Non-positive arguments fall back to the defaults
// (similarity > 0.5, top 3).
func New(minSimilarity float64, limit int) *Ranker {
	if minSimilarity <= 0 {
		minSimilarity = defaultMinSimilarity
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Ranker{minSimilarity: minSimilarity, limit: limit}
}

// Rank keeps results whose similarity (1 - distance) exceeds the minimum,
// sorts them best-first and truncates. An empty return means the caller
// should answer "not relevant enough" instead of extracting.
func (r *Ranker) Rank(results []domain.SearchResult) []domain.SearchResult {
	kept := make([]domain.SearchResult, 0, len(results))
	for _, res := range results {
		if res.Similarity() > r.minSimilarity {
			kept = append(kept, res)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Similarity() > kept[j].Similarity()
	})
	if len(kept) > r.limit {
		kept = kept[:r.limit]
	}
	return kept
}
