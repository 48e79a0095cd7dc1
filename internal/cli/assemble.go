package cli

import (
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"advisor/internal/cache/memory"
	redcache "advisor/internal/cache/redis"
	"advisor/internal/config"
	"advisor/internal/domain"
	"advisor/internal/embedding/openai"
	"advisor/internal/extractor"
	"advisor/internal/genai"
	"advisor/internal/lexical"
	"advisor/internal/ranker"
	"advisor/internal/service"
	memstore "advisor/internal/vectorstore/memory"
	"advisor/internal/vectorstore/qdrant"
)

// buildAdvisor assembles the pipeline from configuration. Every component
// is constructed here and injected; nothing inside the pipeline reaches for
// globals.
func buildAdvisor(cfg *config.AppConfig) (*service.Advisor, error) {
	embedder, err := openai.NewClient(openai.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
		BatchSize: cfg.Embedder.BatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("embedder init: %w", err)
	}

	var generator domain.Generator
	if cfg.Generator.Model != "" {
		generator, err = genai.NewClient(genai.Config{
			BaseURL:   cfg.Generator.BaseURL,
			APIKeyEnv: cfg.Generator.APIKeyEnv,
			Model:     cfg.Generator.Model,
			Timeout:   time.Duration(cfg.Generator.TimeoutSecs) * time.Second,
			MaxTokens: cfg.Generator.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("generator init: %w", err)
		}
	}

	var store domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory", "":
		store = memstore.NewStore(cfg.VectorStore.MaxDistance)
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		store, err = qdrant.NewStore(qdrant.Config{
			URL:         cfg.VectorStore.Qdrant.URL,
			APIKey:      cfg.VectorStore.Qdrant.APIKey,
			Collection:  cfg.VectorStore.Qdrant.Collection,
			MaxDistance: cfg.VectorStore.MaxDistance,
		})
		if err != nil {
			return nil, fmt.Errorf("qdrant init: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	ttl := time.Duration(cfg.Cache.TTLSecs) * time.Second
	var cache domain.Cache
	switch cfg.Cache.Type {
	case "memory", "":
		cache = memory.NewCache(cfg.Cache.Capacity, ttl)
	case "redis":
		if cfg.Cache.Redis == nil {
			return nil, fmt.Errorf("redis config missing")
		}
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		cache = redcache.NewCache(client, ttl)
	default:
		return nil, fmt.Errorf("unknown cache: %s", cfg.Cache.Type)
	}

	analyzer := lexical.NewAnalyzer()
	return service.New(
		embedder,
		store,
		cache,
		analyzer,
		ranker.New(cfg.Search.MinSimilarity, cfg.Search.MaxPassages),
		extractor.New(analyzer),
		generator,
		service.Options{TopK: cfg.Search.TopK},
	), nil
}
