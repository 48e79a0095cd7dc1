package domain

import "errors"

var (
	// ErrModelUnavailable indicates the embedding or generative model could
	// not be loaded or queried.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrIndexWrite indicates the vector store failed to persist a rebuild.
	ErrIndexWrite = errors.New("index write failed")

	// ErrEmptyCorpus indicates ingestion produced no documents; a rebuild
	// aborts without touching the serving index.
	ErrEmptyCorpus = errors.New("empty corpus")
)
