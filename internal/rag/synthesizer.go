// ABOUTME: Answer synthesizer building a grounded prompt over retrieved chunks
// ABOUTME: Constrains the generation service to the supplied context only
package rag

import (
	"context"
	"fmt"
	"strings"
)

// promptTemplate constrains the model to the retrieved context. This is a
// prompt-level contract: the generation service is trusted, not verified,
// to honor it.
const promptTemplate = "You are an AI assistant that explains medical reports for learning purposes only. " +
	"Use ONLY the information in the context. " +
	"If something is not in the context, say you are not sure.\n\n" +
	"Context:\n%s\n\n" +
	"Question: %s\n\n" +
	"Answer clearly and simply:"

// Synthesizer turns retrieved context plus a question into an answer.
type Synthesizer struct {
	generator Generator
}

// NewSynthesizer creates a Synthesizer over the given generator.
func NewSynthesizer(generator Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// BuildPrompt joins the context chunks in the order supplied, separated by
// paragraph breaks, and fills the grounding template.
func BuildPrompt(question string, contextChunks []string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(contextChunks, "\n\n"), question)
}

// Synthesize generates an answer from the question and its retrieved
// context. Callers must not invoke it with zero chunks; that is re-checked
// here so a bypassed caller cannot reach the generation service with an
// empty context. The service's response is returned unmodified.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, contextChunks []string) (string, error) {
	if len(contextChunks) == 0 {
		return "", fmt.Errorf("%w: no context chunks", ErrInvalidInput)
	}
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: empty question", ErrInvalidInput)
	}

	answer, err := s.generator.Complete(ctx, BuildPrompt(question, contextChunks))
	if err != nil {
		return "", fmt.Errorf("complete prompt: %w", err)
	}
	return answer, nil
}
