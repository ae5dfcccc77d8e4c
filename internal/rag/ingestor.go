// ABOUTME: Ingestion orchestrator driving chunking, embedding, and indexing
// ABOUTME: Embeds chunks with bounded fan-out and writes one upsert batch
package rag

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultEmbedConcurrency bounds how many chunks are embedded at once so a
// large document does not trip the embedding service's rate limits.
const DefaultEmbedConcurrency = 4

// Ingestor indexes a document's text into the vector store.
type Ingestor struct {
	embedder    Embedder
	index       Index
	chunkSize   int
	concurrency int
}

// IngestorOption customizes an Ingestor.
type IngestorOption func(*Ingestor)

// WithChunkSize overrides the default chunk size.
func WithChunkSize(size int) IngestorOption {
	return func(ing *Ingestor) { ing.chunkSize = size }
}

// WithEmbedConcurrency overrides the embedding fan-out limit.
func WithEmbedConcurrency(n int) IngestorOption {
	return func(ing *Ingestor) { ing.concurrency = n }
}

// NewIngestor creates an Ingestor over the given embedder and index.
func NewIngestor(embedder Embedder, index Index, opts ...IngestorOption) *Ingestor {
	ing := &Ingestor{
		embedder:    embedder,
		index:       index,
		chunkSize:   DefaultChunkSize,
		concurrency: DefaultEmbedConcurrency,
	}
	for _, opt := range opts {
		opt(ing)
	}
	if ing.concurrency < 1 {
		ing.concurrency = 1
	}
	return ing
}

// Ingest chunks text, embeds every chunk, and upserts the whole batch under
// deterministic vector ids, so re-ingesting the same document overwrites
// prior chunks instead of duplicating them. Embeddings are fully buffered
// before the single upsert call; an embedding failure leaves the index
// untouched. Returns the number of chunks written.
func (ing *Ingestor) Ingest(ctx context.Context, documentID, text, owner string) (int, error) {
	if documentID == "" {
		return 0, fmt.Errorf("%w: empty document id", ErrInvalidInput)
	}

	chunks, err := Chunk(text, ing.chunkSize)
	if err != nil {
		return 0, err
	}

	// Each goroutine writes only its own slot, indexed by the chunk's own
	// position, so fan-out completion order cannot reorder the batch.
	items := make([]Item, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			vector, err := ing.embedder.Embed(gctx, chunk)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}
			items[i] = Item{
				ID:     VectorID(documentID, i),
				Vector: vector,
				Metadata: map[string]any{
					MetaDocumentID: documentID,
					MetaUsername:   owner,
					MetaChunkIndex: i,
					MetaText:       chunk,
				},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := ing.index.Upsert(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert %d chunks: %w", len(items), err)
	}
	return len(items), nil
}
