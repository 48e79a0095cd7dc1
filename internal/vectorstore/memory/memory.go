// Package memory is a brute-force cosine-distance vector store. It is the
// default backend: scholarship corpora are small enough that exact search
// over every vector is cheap.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"advisor/internal/domain"
)

const defaultMaxDistance = 0.9

// Store keeps documents and their vectors in process memory. ReplaceAll
// builds the new contents aside and swaps under the write lock, so searches
// never observe a partially replaced index.
type Store struct {
	mu          sync.RWMutex
	maxDistance float64
	docs        []domain.Document
	vectors     [][]float64
}

// NewStore creates a store that filters results to distance <= maxDistance.
// A non-positive threshold falls back to the default.
func NewStore(maxDistance float64) *Store {
	if maxDistance <= 0 {
		maxDistance = defaultMaxDistance
	}
	return &Store{maxDistance: maxDistance}
}

// ReplaceAll implements domain.VectorStore.
func (s *Store) ReplaceAll(_ context.Context, docs []domain.Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("%w: %d documents for %d vectors", domain.ErrIndexWrite, len(docs), len(vectors))
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w: nothing to index", domain.ErrIndexWrite)
	}
	dim := len(vectors[0])
	staged := make([][]float64, len(vectors))
	stagedDocs := make([]domain.Document, len(docs))
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has dimension %d, want %d", domain.ErrIndexWrite, i, len(v), dim)
		}
		staged[i] = append([]float64(nil), v...)
		stagedDocs[i] = docs[i]
		stagedDocs[i].Embedding = staged[i]
	}

	s.mu.Lock()
	s.docs = stagedDocs
	s.vectors = staged
	s.mu.Unlock()
	return nil
}

// Search implements domain.VectorStore. Results are ordered by increasing
// distance and filtered to the configured threshold.
func (s *Store) Search(_ context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 10
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.SearchResult, 0, len(s.vectors))
	for i, v := range s.vectors {
		dist := cosineDistance(vector, v)
		if dist > s.maxDistance {
			continue
		}
		results = append(results, domain.SearchResult{
			DocumentID: s.docs[i].ID,
			Document:   s.docs[i],
			Score:      dist,
			Text:       s.docs[i].Text,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score < results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Clear implements domain.VectorStore. Calling it on an empty store is a
// no-op success.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	s.docs = nil
	s.vectors = nil
	s.mu.Unlock()
	return nil
}

// Len reports the number of indexed documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// cosineDistance is 1 - cosine similarity; degenerate vectors are treated
// as maximally distant.
func cosineDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
