// ABOUTME: Collaborator interfaces and wire types for the pipeline
// ABOUTME: Embedding, generation, vector index, and history store contracts
package rag

import (
	"context"
	"strconv"

	"github.com/carelens/reportqa/internal/models"
)

// Metadata keys stored with every vector. Each indexed vector carries enough
// metadata to reconstruct its chunk without a secondary lookup.
const (
	MetaDocumentID = "document_id"
	MetaUsername   = "username"
	MetaChunkIndex = "chunk_index"
	MetaText       = "text"
)

// Item is one vector to upsert, keyed by a deterministic ID so re-ingestion
// overwrites instead of duplicating.
type Item struct {
	ID       string
	Vector   []float64
	Metadata map[string]any
}

// Match is one query result: metadata plus similarity score.
type Match struct {
	Metadata map[string]any
	Score    float64
}

// Filter is an equality predicate over metadata fields.
type Filter map[string]string

// Embedder converts text into a fixed-dimension vector. Implementations do
// not retry; retry policy belongs to callers.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Generator produces a single-shot completion for a prompt.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Index is the vector store contract: batch upsert keyed by item ID, and
// similarity query restricted by an equality filter. Query results are
// ordered by descending similarity; ties follow the store's native order
// and callers must not depend on it. Results are at most topK long.
type Index interface {
	Upsert(ctx context.Context, items []Item) error
	Query(ctx context.Context, vector []float64, topK int, filter Filter) ([]Match, error)
}

// HistoryStore persists answered questions. Writes are best-effort from the
// pipeline's point of view.
type HistoryStore interface {
	Save(ctx context.Context, rec models.DiagnosisRecord) error
}

// VectorID derives the deterministic vector identity for a chunk.
func VectorID(documentID string, chunkIndex int) string {
	return documentID + "-" + strconv.Itoa(chunkIndex)
}
