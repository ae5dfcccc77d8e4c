// ABOUTME: Minimal REST client for a Pinecone serverless index
// ABOUTME: Covers the two operations the pipeline needs: upsert and filtered query
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carelens/reportqa/internal/rag"
)

// Config contains connection details for a Pinecone index.
type Config struct {
	// Host is the index host URL, e.g. https://medical-reports-abc123.svc.us-east-1.pinecone.io
	Host      string
	APIKey    string
	Namespace string
	Timeout   time.Duration
}

// Index is a thin client over Pinecone's data-plane REST API. It implements
// rag.Index.
type Index struct {
	host      string
	apiKey    string
	namespace string
	client    *http.Client
}

// New creates an Index client from config.
func New(cfg Config) *Index {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Index{
		host:      cfg.Host,
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
		client:    &http.Client{Timeout: timeout},
	}
}

type upsertVector struct {
	ID       string         `json:"id"`
	Values   []float64      `json:"values"`
	Metadata map[string]any `json:"metadata"`
}

type upsertRequest struct {
	Vectors   []upsertVector `json:"vectors"`
	Namespace string         `json:"namespace,omitempty"`
}

type queryRequest struct {
	Vector          []float64      `json:"vector"`
	TopK            int            `json:"topK"`
	Filter          map[string]any `json:"filter,omitempty"`
	IncludeMetadata bool           `json:"includeMetadata"`
	Namespace       string         `json:"namespace,omitempty"`
}

type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

// Upsert writes or overwrites vectors keyed by id. Pinecone upserts are
// idempotent by id, so re-ingestion overwrites prior chunks.
func (ix *Index) Upsert(ctx context.Context, items []rag.Item) error {
	vectors := make([]upsertVector, len(items))
	for i, item := range items {
		vectors[i] = upsertVector{
			ID:       item.ID,
			Values:   item.Vector,
			Metadata: item.Metadata,
		}
	}
	req := upsertRequest{Vectors: vectors, Namespace: ix.namespace}
	return ix.postJSON(ctx, ix.host+"/vectors/upsert", req, nil)
}

// Query runs a similarity search bounded by topK, restricted by equality
// filters over metadata. Results come back in Pinecone's descending
// similarity order.
func (ix *Index) Query(ctx context.Context, vector []float64, topK int, filter rag.Filter) ([]rag.Match, error) {
	if topK <= 0 {
		topK = rag.DefaultTopK
	}
	req := queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
		Namespace:       ix.namespace,
	}
	if len(filter) > 0 {
		req.Filter = map[string]any{}
		for field, value := range filter {
			req.Filter[field] = map[string]any{"$eq": value}
		}
	}

	var resp queryResponse
	if err := ix.postJSON(ctx, ix.host+"/query", req, &resp); err != nil {
		return nil, err
	}

	matches := make([]rag.Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, rag.Match{Metadata: m.Metadata, Score: m.Score})
	}
	return matches, nil
}

func (ix *Index) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", ix.apiKey)

	resp, err := ix.client.Do(req)
	if err != nil {
		return &rag.IndexUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		// Pinecone rejects filters over unindexed fields with a 400.
		if resp.StatusCode == http.StatusBadRequest && bytes.Contains(msg, []byte("filter")) {
			return &rag.InvalidFilterError{Field: string(msg)}
		}
		return &rag.IndexUnavailableError{
			Err: fmt.Errorf("POST %s: %s: %s", url, resp.Status, msg),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &rag.IndexUnavailableError{Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
