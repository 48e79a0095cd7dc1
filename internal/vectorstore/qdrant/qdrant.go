// Package qdrant implements the vector store on a Qdrant server. The live
// index is addressed through a collection alias; rebuilds upsert into a
// fresh collection and repoint the alias, so a failed rebuild leaves the
// previous collection serving.
package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"advisor/internal/domain"
	"advisor/internal/logger"
)

const defaultMaxDistance = 0.9

// Config holds Qdrant connection details.
type Config struct {
	URL         string
	APIKey      string
	Collection  string
	MaxDistance float64
}

// Store implements domain.VectorStore for Qdrant.
type Store struct {
	client      *qdrant.Client
	alias       string
	maxDistance float64
}

// NewStore connects to a Qdrant server. The configured collection name is
// used as an alias over generation-suffixed collections.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("qdrant collection is required")
	}
	raw := cfg.URL
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse qdrant url: %w", err)
	}
	port := 6334
	if u.Port() != "" {
		p, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid qdrant port: %w", err)
		}
		port = p
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   u.Hostname(),
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}
	maxDistance := cfg.MaxDistance
	if maxDistance <= 0 {
		maxDistance = defaultMaxDistance
	}
	return &Store{client: client, alias: cfg.Collection, maxDistance: maxDistance}, nil
}

// ReplaceAll implements domain.VectorStore. The new contents go into a
// generation collection; the alias switches only after a complete upsert.
func (s *Store) ReplaceAll(ctx context.Context, docs []domain.Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("%w: %d documents for %d vectors", domain.ErrIndexWrite, len(docs), len(vectors))
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w: nothing to index", domain.ErrIndexWrite)
	}

	generation := fmt.Sprintf("%s-%d", s.alias, time.Now().UnixNano())
	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: generation,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(len(vectors[0])),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: create collection: %v", domain.ErrIndexWrite, err)
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		payload := map[string]any{"text": doc.Text, "document_id": doc.ID}
		for k, v := range doc.Metadata {
			payload["meta_"+k] = v
		}
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(doc.ID),
			Vectors: qdrant.NewVectors(toFloat32(vectors[i])...),
			Payload: qdrant.NewValueMap(payload),
		}
	}
	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: generation,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		// keep the old generation serving; drop the half-written one
		if delErr := s.client.DeleteCollection(ctx, generation); delErr != nil {
			logger.Debug("drop staged collection %s failed: %v", generation, delErr)
		}
		return fmt.Errorf("%w: upsert: %v", domain.ErrIndexWrite, err)
	}

	if err := s.client.DeleteAlias(ctx, s.alias); err != nil {
		logger.Debug("delete alias %s: %v", s.alias, err)
	}
	if err := s.client.CreateAlias(ctx, s.alias, generation); err != nil {
		return fmt.Errorf("%w: switch alias: %v", domain.ErrIndexWrite, err)
	}
	s.dropStaleGenerations(ctx, generation)
	return nil
}

// Search implements domain.VectorStore. Qdrant reports cosine similarity;
// scores are converted to the distance convention used everywhere else.
func (s *Store) Search(ctx context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 10
	}
	limit := uint64(topK)
	minScore := float32(1 - s.maxDistance)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.alias,
		Query:          qdrant.NewQuery(toFloat32(vector)...),
		Limit:          &limit,
		ScoreThreshold: &minScore,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		// an alias that was never created means an empty index, not a failure
		if isNotFound(err) {
			return []domain.SearchResult{}, nil
		}
		return nil, fmt.Errorf("qdrant query: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(points))
	for _, point := range points {
		doc := domain.Document{Metadata: map[string]any{}}
		for k, v := range point.Payload {
			switch {
			case k == "text":
				doc.Text = v.GetStringValue()
			case k == "document_id":
				doc.ID = v.GetStringValue()
			case strings.HasPrefix(k, "meta_"):
				doc.Metadata[strings.TrimPrefix(k, "meta_")] = valueToAny(v)
			}
		}
		results = append(results, domain.SearchResult{
			DocumentID: doc.ID,
			Document:   doc,
			Score:      1 - float64(point.Score),
			Text:       doc.Text,
		})
	}
	return results, nil
}

// Clear implements domain.VectorStore by dropping the alias and every
// generation collection behind it. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.DeleteAlias(ctx, s.alias); err != nil {
		logger.Debug("delete alias %s: %v", s.alias, err)
	}
	s.dropStaleGenerations(ctx, "")
	return nil
}

// Close releases the underlying gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// dropStaleGenerations removes generation collections other than keep.
func (s *Store) dropStaleGenerations(ctx context.Context, keep string) {
	names, err := s.client.ListCollections(ctx)
	if err != nil {
		logger.Debug("list collections: %v", err)
		return
	}
	for _, name := range names {
		if name == keep || !strings.HasPrefix(name, s.alias+"-") {
			continue
		}
		if err := s.client.DeleteCollection(ctx, name); err != nil {
			logger.Debug("delete stale collection %s: %v", name, err)
		}
	}
}

// isNotFound reports whether err is a gRPC NotFound status, possibly wrapped.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

func valueToAny(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	default:
		return v.String()
	}
}
