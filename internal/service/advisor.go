// Package service sequences the retrieval-and-answer pipeline: normalize,
// cache lookup, embed, search, rank, classify, extract, cache write.
package service

import (
	"context"
	"sync"

	"advisor/internal/domain"
	"advisor/internal/extractor"
	"advisor/internal/lexical"
	"advisor/internal/logger"
	"advisor/internal/normalizer"
	"advisor/internal/ranker"
)

// Canned answers for every degraded path. The orchestrator never lets a
// failure escape ProcessQuery: callers always receive a valid Response.
const (
	answerEmptyQuery   = "Пожалуйста, введите ваш вопрос."
	answerNoResults    = "К сожалению, я не нашел информации по вашему запросу."
	answerLowRelevance = "Найдена информация, но она недостаточно релевантна вашему запросу. Попробуйте уточнить вопрос."
	answerFailure      = "Произошла ошибка при обработке вашего запроса. Пожалуйста, попробуйте переформулировать вопрос."
)

const smallTalkConfidence = 0.5

// Options tunes the advisor pipeline.
type Options struct {
	// TopK is how many neighbors the vector index is asked for.
	TopK int
}

// Advisor owns the per-request pipeline and the index rebuild path. All
// collaborators are injected; the advisor holds no global state.
type Advisor struct {
	mu        sync.RWMutex
	embedder  domain.Embedder
	store     domain.VectorStore
	cache     domain.Cache
	analyzer  *lexical.Analyzer
	ranker    *ranker.Ranker
	extractor *extractor.Extractor
	generator domain.Generator // optional; nil disables small-talk
	topK      int
}

// New assembles an advisor. generator may be nil.
func New(embedder domain.Embedder, store domain.VectorStore, cache domain.Cache,
	analyzer *lexical.Analyzer, rk *ranker.Ranker, ex *extractor.Extractor,
	generator domain.Generator, opts Options) *Advisor {
	topK := opts.TopK
	if topK <= 0 {
		topK = 10
	}
	return &Advisor{
		embedder:  embedder,
		store:     store,
		cache:     cache,
		analyzer:  analyzer,
		ranker:    rk,
		extractor: ex,
		generator: generator,
		topK:      topK,
	}
}

// ProcessQuery answers a single question. Every failure inside the pipeline
// resolves to a canned Response with zero confidence; errors never propagate
// to the front-end.
func (a *Advisor) ProcessQuery(ctx context.Context, text string) *domain.Response {
	normalized := normalizer.Normalize(text)
	query := domain.Query{Text: normalized}

	if normalized == "" {
		return &domain.Response{Query: query, Answer: answerEmptyQuery, Confidence: 0}
	}

	if cached, ok := a.cache.Get(ctx, normalized); ok {
		logger.Debug("cache hit for %q", normalized)
		return cached
	}

	if a.generator != nil && a.analyzer.IsSmallTalk(normalized) {
		logger.Debug("small-talk detected for %q", normalized)
		answer, err := a.generator.Complete(ctx, text)
		if err != nil {
			logger.Error("small-talk generation failed: %v", err)
			return &domain.Response{Query: query, Answer: answerFailure, Confidence: 0}
		}
		resp := &domain.Response{Query: query, Answer: answer, Confidence: smallTalkConfidence}
		a.cache.Set(ctx, normalized, resp)
		return resp
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	vector, err := a.embedder.Embed(ctx, normalized)
	if err != nil {
		logger.Error("embedding failed: %v", err)
		return &domain.Response{Query: query, Answer: answerFailure, Confidence: 0}
	}

	results, err := a.store.Search(ctx, vector, a.topK)
	if err != nil {
		logger.Error("vector search failed: %v", err)
		return &domain.Response{Query: query, Answer: answerFailure, Confidence: 0}
	}
	if len(results) == 0 {
		return &domain.Response{Query: query, Answer: answerNoResults, Confidence: 0}
	}

	ranked := a.ranker.Rank(results)
	if len(ranked) == 0 {
		return &domain.Response{Query: query, Answer: answerLowRelevance, Confidence: 0}
	}

	questionType := a.analyzer.QuestionType(normalized)
	scholarshipType := a.analyzer.ScholarshipType(normalized)
	logger.Debug("classified %q as %s/%s", normalized, questionType, scholarshipType)

	answer, confidence := a.extractor.Extract(normalized, questionType, scholarshipType, ranked)

	resp := &domain.Response{
		Query:      query,
		Answer:     answer,
		Sources:    ranked,
		Confidence: confidence,
	}
	a.cache.Set(ctx, normalized, resp)
	return resp
}

// RebuildIndex embeds the documents and atomically replaces the index
// contents. It is exclusive with in-flight searches: no query observes a
// partially replaced index. On failure the previous index keeps serving;
// on success the response cache is purged since cached answers may be stale.
func (a *Advisor) RebuildIndex(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return domain.ErrEmptyCorpus
	}
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	// Embedding happens outside the exclusive section: the model call is
	// slow and does not touch the serving index.
	vectors, err := a.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.ReplaceAll(ctx, docs, vectors); err != nil {
		return err
	}
	a.cache.Purge(ctx)
	logger.Info("index rebuilt with %d documents", len(docs))
	return nil
}
