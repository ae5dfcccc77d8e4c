// ABOUTME: Tests for the retrieval orchestrator
// ABOUTME: Covers document scoping, ordering, validation, and the empty outcome
package rag

import (
	"context"
	"errors"
	"testing"
)

// seedIndex writes one vector per listed chunk, embedded with fakeEmbedder.
func seedIndex(t *testing.T, index *fakeIndex, docID, owner string, chunks []string) {
	t.Helper()
	embedder := &fakeEmbedder{}
	items := make([]Item, len(chunks))
	for i, c := range chunks {
		vec, _ := embedder.Embed(context.Background(), c)
		items[i] = Item{
			ID:     VectorID(docID, i),
			Vector: vec,
			Metadata: map[string]any{
				MetaDocumentID: docID,
				MetaUsername:   owner,
				MetaChunkIndex: i,
				MetaText:       c,
			},
		}
	}
	if err := index.Upsert(context.Background(), items); err != nil {
		t.Fatalf("seeding upsert failed: %v", err)
	}
}

func TestRetriever_ScopedToDocument(t *testing.T) {
	index := newFakeIndex()
	seedIndex(t, index, "doc-a", "alice", []string{"blood pressure normal", "glucose elevated"})
	seedIndex(t, index, "doc-b", "bob", []string{"blood pressure normal", "x-ray clear"})

	r := NewRetriever(&fakeEmbedder{}, index)
	texts, err := r.Retrieve(context.Background(), "doc-a", "what about blood pressure", 10)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if len(texts) != 2 {
		t.Fatalf("got %d chunks, want 2 (only doc-a's)", len(texts))
	}
	for _, text := range texts {
		if text == "x-ray clear" {
			t.Errorf("retrieved chunk from the wrong document: %q", text)
		}
	}
}

func TestRetriever_OrderedByScore(t *testing.T) {
	index := newFakeIndex()
	seedIndex(t, index, "doc-a", "alice", []string{"short", "a considerably longer chunk of report text", "mid sized"})

	r := NewRetriever(&fakeEmbedder{}, index)
	// The fake embedder scores longer texts higher against a long question.
	texts, err := r.Retrieve(context.Background(), "doc-a", "a considerably longer question to match against", 3)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(texts) != 3 {
		t.Fatalf("got %d chunks, want 3", len(texts))
	}
	if texts[0] != "a considerably longer chunk of report text" {
		t.Errorf("top chunk = %q, want the longest chunk", texts[0])
	}
}

func TestRetriever_TopKBoundsResult(t *testing.T) {
	index := newFakeIndex()
	seedIndex(t, index, "doc-a", "alice", []string{"one", "two", "three", "four"})

	r := NewRetriever(&fakeEmbedder{}, index)
	texts, err := r.Retrieve(context.Background(), "doc-a", "question", 2)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(texts) != 2 {
		t.Errorf("got %d chunks, want topK = 2", len(texts))
	}
}

func TestRetriever_UnknownDocumentIsEmptyNotError(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{}, newFakeIndex())

	texts, err := r.Retrieve(context.Background(), "never-ingested", "question", 5)
	if err != nil {
		t.Fatalf("Retrieve() error = %v, want nil", err)
	}
	if len(texts) != 0 {
		t.Errorf("got %d chunks, want 0", len(texts))
	}
}

func TestRetriever_Validation(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{}, newFakeIndex())

	tests := []struct {
		name     string
		docID    string
		question string
	}{
		{
			name:     "empty question",
			docID:    "doc-a",
			question: "",
		},
		{
			name:     "whitespace question",
			docID:    "doc-a",
			question: "   ",
		},
		{
			name:     "empty document id",
			docID:    "",
			question: "a question",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Retrieve(context.Background(), tt.docID, tt.question, 5)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Retrieve() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRetriever_EmbedFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: &EmbeddingServiceError{Err: errBoom}}
	index := newFakeIndex()
	r := NewRetriever(embedder, index)

	_, err := r.Retrieve(context.Background(), "doc-a", "question", 5)

	var embedErr *EmbeddingServiceError
	if !errors.As(err, &embedErr) {
		t.Errorf("Retrieve() error = %v, want EmbeddingServiceError", err)
	}
	if index.queryCalls != 0 {
		t.Errorf("index queried %d times after embedding failure", index.queryCalls)
	}
}
