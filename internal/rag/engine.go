// ABOUTME: Engine exposing the two pipeline operations: ingest and answer
// ABOUTME: Owns the orchestrators and the best-effort history write
package rag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/carelens/reportqa/internal/models"
	"github.com/google/uuid"
)

// IngestResult is the outcome of indexing one document.
type IngestResult struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunks"`
}

// AnswerResult is the outcome of answering one question. Persisted reports
// whether the history record was written; a failed write never fails the
// answer itself.
type AnswerResult struct {
	Answer      string `json:"answer"`
	ContextUsed int    `json:"context_used"`
	Persisted   bool   `json:"persisted"`
}

// Engine wires the orchestrators together. Clients are injected at
// construction so tests can substitute fakes; history may be nil.
type Engine struct {
	ingestor    *Ingestor
	retriever   *Retriever
	synthesizer *Synthesizer
	history     HistoryStore
	topK        int
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithHistory attaches a best-effort history store.
func WithHistory(history HistoryStore) EngineOption {
	return func(e *Engine) { e.history = history }
}

// WithTopK overrides how many chunks back each answer.
func WithTopK(topK int) EngineOption {
	return func(e *Engine) {
		if topK > 0 {
			e.topK = topK
		}
	}
}

// NewEngine creates an Engine from already-constructed pipeline stages.
func NewEngine(ingestor *Ingestor, retriever *Retriever, synthesizer *Synthesizer, opts ...EngineOption) *Engine {
	e := &Engine{
		ingestor:    ingestor,
		retriever:   retriever,
		synthesizer: synthesizer,
		topK:        DefaultTopK,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ingest indexes text under documentID for owner. An empty documentID gets
// a generated UUID; passing an existing id re-ingests that document, which
// is safe because vector ids are deterministic.
func (e *Engine) Ingest(ctx context.Context, documentID, text, owner string) (IngestResult, error) {
	if documentID == "" {
		documentID = uuid.New().String()
	}
	count, err := e.ingestor.Ingest(ctx, documentID, text, owner)
	if err != nil {
		return IngestResult{}, err
	}
	return IngestResult{DocumentID: documentID, ChunkCount: count}, nil
}

// Answer retrieves context for the question from one document, synthesizes
// a grounded answer, and records the exchange. Zero retrieved chunks means
// the generation service is never called and ErrNoChunks is returned.
func (e *Engine) Answer(ctx context.Context, documentID, question, username string) (AnswerResult, error) {
	chunks, err := e.retriever.Retrieve(ctx, documentID, question, e.topK)
	if err != nil {
		return AnswerResult{}, err
	}
	if len(chunks) == 0 {
		return AnswerResult{}, fmt.Errorf("%w: %s", ErrNoChunks, documentID)
	}

	answer, err := e.synthesizer.Synthesize(ctx, question, chunks)
	if err != nil {
		return AnswerResult{}, err
	}

	result := AnswerResult{Answer: answer, ContextUsed: len(chunks)}
	if e.history != nil {
		rec := models.DiagnosisRecord{
			Username:   username,
			Question:   question,
			Answer:     answer,
			DocumentID: documentID,
			CreatedAt:  time.Now().UTC(),
		}
		if err := e.history.Save(ctx, rec); err != nil {
			log.Printf("history write failed (answer still returned): %v", err)
		} else {
			result.Persisted = true
		}
	}
	return result, nil
}

// IsRetryable reports whether an error came from a collaborator and may
// succeed on a retry with backoff. Validation failures never qualify.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNoChunks) {
		return false
	}
	var filterErr *InvalidFilterError
	if errors.As(err, &filterErr) {
		return false
	}
	var embedErr *EmbeddingServiceError
	var genErr *GenerationServiceError
	var indexErr *IndexUnavailableError
	return errors.As(err, &embedErr) || errors.As(err, &genErr) || errors.As(err, &indexErr)
}
