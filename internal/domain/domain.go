package domain

import "context"

// Document is a single indexed passage (one paragraph of a source file).
// The embedding is derived and may be absent until computed.
type Document struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float64      `json:"-"`
}

// Query is a single user question. Text holds the normalized form once the
// orchestrator has processed it; the normalized text is also the cache key.
type Query struct {
	Text string `json:"text"`
}

// SearchResult is a matching passage with its cosine distance to the query.
// Lower score means a closer match. The index layer only returns results
// whose score passes the configured maximum distance.
type SearchResult struct {
	DocumentID string   `json:"document_id"`
	Document   Document `json:"document"`
	Score      float64  `json:"score"`
	Text       string   `json:"text"`
}

// Similarity converts the distance score into a similarity in [0,1].
func (r SearchResult) Similarity() float64 { return 1 - r.Score }

// Response is the answer to a query. Confidence is a heuristic score, not a
// calibrated probability; it is 0.0 only when no usable answer was found.
type Response struct {
	Query      Query          `json:"query"`
	Answer     string         `json:"answer"`
	Sources    []SearchResult `json:"sources,omitempty"`
	Confidence float64        `json:"confidence"`
}

// QuestionType is the coarse intent of a query.
type QuestionType string

const (
	QuestionDefinition   QuestionType = "definition"
	QuestionAmount       QuestionType = "amount"
	QuestionRequirements QuestionType = "requirements"
	QuestionDeadline     QuestionType = "deadline"
	QuestionProcedure    QuestionType = "procedure"
	QuestionGeneral      QuestionType = "general"
)

// ScholarshipType is the scholarship category a query refers to.
type ScholarshipType string

const (
	ScholarshipAcademic ScholarshipType = "академическая"
	ScholarshipEnhanced ScholarshipType = "повышенная"
	ScholarshipSocial   ScholarshipType = "социальная"
	ScholarshipSpecial  ScholarshipType = "специальная"
)

// Embedder converts text into a fixed-length vector via an external model.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// VectorStore persists document vectors and supports nearest-neighbor search.
type VectorStore interface {
	// ReplaceAll swaps the entire index contents. The replacement is
	// all-or-nothing: on failure the previous contents remain serving.
	ReplaceAll(ctx context.Context, docs []Document, vectors [][]float64) error
	// Search returns up to topK results ordered by increasing distance,
	// filtered to the configured maximum distance. Zero survivors is an
	// empty slice, not an error.
	Search(ctx context.Context, vector []float64, topK int) ([]SearchResult, error)
	// Clear drops all indexed content. Idempotent.
	Clear(ctx context.Context) error
}

// Cache memoizes responses by normalized query text.
type Cache interface {
	Get(ctx context.Context, key string) (*Response, bool)
	Set(ctx context.Context, key string, resp *Response)
	Purge(ctx context.Context)
}

// Generator produces free-form text for small-talk queries that the
// retrieval pipeline cannot answer.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Advisor is the query orchestrator exposed to front-ends.
type Advisor interface {
	// ProcessQuery never fails outward: every error path resolves to a
	// Response with an explanatory answer and zero confidence.
	ProcessQuery(ctx context.Context, text string) *Response
	RebuildIndex(ctx context.Context, docs []Document) error
}
