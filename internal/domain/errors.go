package domain

import "errors"

var (
	// ErrLLMUnavailable signals an inference service transport or protocol failure.
	ErrLLMUnavailable = errors.New("llm unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
