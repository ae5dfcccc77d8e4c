// ABOUTME: In-memory vector index with brute-force cosine similarity
// ABOUTME: Used for tests and local runs without a hosted vector store
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/carelens/reportqa/internal/rag"
)

// indexedFields are the metadata fields that can appear in a query filter,
// mirroring the hosted index's metadata index configuration.
var indexedFields = map[string]bool{
	rag.MetaDocumentID: true,
	rag.MetaUsername:   true,
}

// Index keeps vectors in a map keyed by vector id, so repeated upserts of
// the same id overwrite rather than duplicate.
type Index struct {
	mu    sync.RWMutex
	items map[string]rag.Item
}

// New creates an empty in-memory index.
func New() *Index {
	return &Index{items: map[string]rag.Item{}}
}

// Upsert writes or overwrites entries keyed by item ID.
func (ix *Index) Upsert(_ context.Context, items []rag.Item) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item with empty vector id")
		}
		ix.items[item.ID] = item
	}
	return nil
}

// Query returns up to topK matches ordered by descending cosine similarity,
// restricted to items whose metadata satisfies every filter equality.
func (ix *Index) Query(_ context.Context, vector []float64, topK int, filter rag.Filter) ([]rag.Match, error) {
	for field := range filter {
		if !indexedFields[field] {
			return nil, &rag.InvalidFilterError{Field: field}
		}
	}
	if topK <= 0 {
		topK = rag.DefaultTopK
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	matches := make([]rag.Match, 0, len(ix.items))
	for _, item := range ix.items {
		if !matchesFilter(item.Metadata, filter) {
			continue
		}
		matches = append(matches, rag.Match{
			Metadata: item.Metadata,
			Score:    cosineSimilarity(vector, item.Vector),
		})
	}

	// Stable so tie order does not wobble between calls, though callers
	// must not depend on it.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Len reports how many vectors are stored.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.items)
}

func matchesFilter(metadata map[string]any, filter rag.Filter) bool {
	for field, want := range filter {
		got, ok := metadata[field].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
