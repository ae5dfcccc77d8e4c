// ABOUTME: Fixed-size text chunker
// ABOUTME: Pure function splitting a document into non-overlapping segments
package rag

import (
	"fmt"
	"strings"
)

// DefaultChunkSize is the chunk length in characters used when the caller
// does not override it.
const DefaultChunkSize = 800

// Chunk splits text into contiguous, non-overlapping segments of exactly
// chunkSize characters; the final segment holds the remainder. Splitting is
// by character, not by sentence, so a chunk may cut a sentence mid-word.
// Concatenating the returned segments reproduces text exactly.
func Chunk(text string, chunkSize int) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidInput)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, chunkSize)
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+chunkSize-1)/chunkSize)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks, nil
}
