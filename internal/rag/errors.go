// ABOUTME: Error taxonomy for the ingestion and retrieval pipeline
// ABOUTME: Separates caller mistakes, collaborator failures, and the no-chunks outcome
package rag

import "errors"

// ErrInvalidInput marks caller-caused failures: empty text or question,
// non-positive chunk size, missing identifiers. Never worth retrying.
var ErrInvalidInput = errors.New("invalid input")

// ErrNoChunks is returned by Answer when retrieval finds nothing for the
// document. It is a normal outcome, reported distinctly so callers can say
// "no relevant content" instead of presenting a failure.
var ErrNoChunks = errors.New("no chunks found for document")

// EmbeddingServiceError wraps a failure of the external embedding service.
type EmbeddingServiceError struct {
	Err error
}

func (e *EmbeddingServiceError) Error() string {
	return "embedding service: " + e.Err.Error()
}

func (e *EmbeddingServiceError) Unwrap() error { return e.Err }

// GenerationServiceError wraps a failure of the external generation service.
type GenerationServiceError struct {
	Err error
}

func (e *GenerationServiceError) Error() string {
	return "generation service: " + e.Err.Error()
}

func (e *GenerationServiceError) Unwrap() error { return e.Err }

// IndexUnavailableError wraps a connectivity or auth failure of the vector
// index. Safe to retry with backoff at the caller's discretion.
type IndexUnavailableError struct {
	Err error
}

func (e *IndexUnavailableError) Error() string {
	return "vector index unavailable: " + e.Err.Error()
}

func (e *IndexUnavailableError) Unwrap() error { return e.Err }

// InvalidFilterError means a query filter referenced a metadata field the
// index does not know about. Programmer error, not retried.
type InvalidFilterError struct {
	Field string
}

func (e *InvalidFilterError) Error() string {
	return "invalid filter field: " + e.Field
}
