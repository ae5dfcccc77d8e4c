// ABOUTME: Shared in-memory fakes for pipeline tests
// ABOUTME: Deterministic embedder, map-backed index, scripted generator and history
package rag

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/carelens/reportqa/internal/models"
)

// fakeEmbedder returns a deterministic 4-dimensional vector derived from the
// text so similarity between equal texts is maximal.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var length, vowels, spaces, digits float64
	for _, r := range text {
		length++
		switch {
		case r == 'a' || r == 'e' || r == 'i' || r == 'o' || r == 'u':
			vowels++
		case r == ' ':
			spaces++
		case r >= '0' && r <= '9':
			digits++
		}
	}
	return []float64{length, vowels, spaces, digits}, nil
}

// fakeIndex stores items keyed by vector id, mirroring upsert semantics.
type fakeIndex struct {
	mu         sync.Mutex
	items      map[string]Item
	upserts    int
	upsertErr  error
	queryErr   error
	queryCalls int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{items: map[string]Item{}}
}

func (f *fakeIndex) Upsert(_ context.Context, items []Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	for _, it := range items {
		f.items[it.ID] = it
	}
	return nil
}

func (f *fakeIndex) Query(_ context.Context, vector []float64, topK int, filter Filter) ([]Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var matches []Match
	for _, it := range f.items {
		if filter != nil {
			if docID, ok := filter[MetaDocumentID]; ok {
				if it.Metadata[MetaDocumentID] != docID {
					continue
				}
			}
		}
		matches = append(matches, Match{Metadata: it.Metadata, Score: dot(it.Vector, vector)})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (f *fakeIndex) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// fakeGenerator records the prompts it was handed.
type fakeGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeGenerator) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// fakeHistory records saves and can simulate a failing store.
type fakeHistory struct {
	records []models.DiagnosisRecord
	err     error
}

func (f *fakeHistory) Save(_ context.Context, rec models.DiagnosisRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

var errBoom = errors.New("boom")
