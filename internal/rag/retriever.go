// ABOUTME: Retrieval orchestrator for similarity-filtered chunk lookup
// ABOUTME: Embeds the question and queries the index scoped to one document
package rag

import (
	"context"
	"fmt"
	"strings"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// Retriever answers "which chunks of this document are closest to this
// question" by embedding the question and running a filtered vector query.
type Retriever struct {
	embedder Embedder
	index    Index
}

// NewRetriever creates a Retriever over the given embedder and index.
func NewRetriever(embedder Embedder, index Index) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Retrieve returns the texts of the topK most similar chunks, in descending
// similarity order, restricted to documentID. A document that was never
// ingested yields an empty slice, not an error.
func (r *Retriever) Retrieve(ctx context.Context, documentID, question string, topK int) ([]string, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: empty document id", ErrInvalidInput)
	}
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: empty question", ErrInvalidInput)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	matches, err := r.index.Query(ctx, vector, topK, Filter{MetaDocumentID: documentID})
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		text, ok := m.Metadata[MetaText].(string)
		if !ok {
			return nil, fmt.Errorf("match for %q missing text metadata", documentID)
		}
		texts = append(texts, text)
	}
	return texts, nil
}
