package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor/internal/domain"
)

func doc(id, text string) domain.Document {
	return domain.Document{ID: id, Text: text}
}

func TestReplaceAllRejectsMismatchedLengths(t *testing.T) {
	s := NewStore(0)
	err := s.ReplaceAll(context.Background(), []domain.Document{doc("a", "a")}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexWrite)
}

func TestReplaceAllRejectsEmptyCorpus(t *testing.T) {
	s := NewStore(0)
	err := s.ReplaceAll(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrIndexWrite)
}

func TestReplaceAllRejectsRaggedVectors(t *testing.T) {
	s := NewStore(0)
	err := s.ReplaceAll(context.Background(),
		[]domain.Document{doc("a", "a"), doc("b", "b")},
		[][]float64{{1, 0}, {1, 0, 0}})
	assert.ErrorIs(t, err, domain.ErrIndexWrite)
}

func TestReplaceAllKeepsOldIndexOnFailure(t *testing.T) {
	s := NewStore(0)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx, []domain.Document{doc("a", "a")}, [][]float64{{1, 0}}))

	err := s.ReplaceAll(ctx, []domain.Document{doc("b", "b")}, [][]float64{})
	require.Error(t, err)

	results, err := s.Search(ctx, []float64{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].DocumentID)
}

func TestSearchOrdersByDistance(t *testing.T) {
	s := NewStore(0)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx,
		[]domain.Document{doc("orthogonal", "x"), doc("exact", "y"), doc("near", "z")},
		[][]float64{{0, 1}, {1, 0}, {1, 0.5}}))

	results, err := s.Search(ctx, []float64{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 2, "orthogonal vector is past the 0.9 distance cutoff")
	assert.Equal(t, "exact", results[0].DocumentID)
	assert.Equal(t, "near", results[1].DocumentID)
	assert.Less(t, results[0].Score, results[1].Score)
	for _, r := range results {
		assert.LessOrEqual(t, r.Score, 0.9)
	}
}

func TestSearchRespectsTopK(t *testing.T) {
	s := NewStore(0)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx,
		[]domain.Document{doc("a", "a"), doc("b", "b"), doc("c", "c")},
		[][]float64{{1, 0}, {1, 0.1}, {1, 0.2}}))

	results, err := s.Search(ctx, []float64{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchTightThreshold(t *testing.T) {
	s := NewStore(0.1)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx,
		[]domain.Document{doc("near", "a"), doc("far", "b")},
		[][]float64{{1, 0.1}, {1, 2}}))

	results, err := s.Search(ctx, []float64{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "near", results[0].DocumentID)
}

func TestSearchEmptyStore(t *testing.T) {
	s := NewStore(0)
	results, err := s.Search(context.Background(), []float64{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchCopiesDocumentEmbedding(t *testing.T) {
	// the store must not alias the caller's vector slice
	s := NewStore(0)
	ctx := context.Background()
	vec := []float64{1, 0}
	require.NoError(t, s.ReplaceAll(ctx, []domain.Document{doc("a", "a")}, [][]float64{vec}))

	vec[0] = 0
	vec[1] = 1
	results, err := s.Search(ctx, []float64{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 0, results[0].Score, 1e-9)
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewStore(0)
	ctx := context.Background()
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.ReplaceAll(ctx, []domain.Document{doc("a", "a")}, [][]float64{{1}}))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestCosineDistanceDegenerate(t *testing.T) {
	assert.Equal(t, 1.0, cosineDistance([]float64{0, 0}, []float64{1, 0}))
	assert.InDelta(t, 0, cosineDistance([]float64{2, 0}, []float64{5, 0}), 1e-9)
	assert.InDelta(t, 2, cosineDistance([]float64{1, 0}, []float64{-1, 0}), 1e-9)
}
