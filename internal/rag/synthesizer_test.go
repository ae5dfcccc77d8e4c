// ABOUTME: Tests for the answer synthesizer
// ABOUTME: Covers empty-context refusal, prompt assembly, and error wrapping
package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSynthesizer_EmptyContextRefused(t *testing.T) {
	gen := &fakeGenerator{answer: "should never happen"}
	s := NewSynthesizer(gen)

	_, err := s.Synthesize(context.Background(), "a question", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Synthesize() error = %v, want ErrInvalidInput", err)
	}
	if len(gen.prompts) != 0 {
		t.Errorf("generation service called %d times with empty context", len(gen.prompts))
	}
}

func TestSynthesizer_EmptyQuestionRefused(t *testing.T) {
	gen := &fakeGenerator{answer: "irrelevant"}
	s := NewSynthesizer(gen)

	_, err := s.Synthesize(context.Background(), "  ", []string{"some context"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Synthesize() error = %v, want ErrInvalidInput", err)
	}
}

func TestSynthesizer_PromptContainsContextInOrder(t *testing.T) {
	gen := &fakeGenerator{answer: "the answer"}
	s := NewSynthesizer(gen)

	chunks := []string{"first chunk", "second chunk", "third chunk"}
	answer, err := s.Synthesize(context.Background(), "what happened?", chunks)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if answer != "the answer" {
		t.Errorf("answer = %q, want generator output unmodified", answer)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.prompts))
	}
	prompt := gen.prompts[0]

	if !strings.Contains(prompt, "first chunk\n\nsecond chunk\n\nthird chunk") {
		t.Errorf("prompt does not join chunks with paragraph breaks:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Question: what happened?") {
		t.Errorf("prompt missing question:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Use ONLY the information in the context") {
		t.Errorf("prompt missing grounding instruction:\n%s", prompt)
	}
}

func TestSynthesizer_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: &GenerationServiceError{Err: errBoom}}
	s := NewSynthesizer(gen)

	_, err := s.Synthesize(context.Background(), "a question", []string{"context"})

	var genErr *GenerationServiceError
	if !errors.As(err, &genErr) {
		t.Errorf("Synthesize() error = %v, want GenerationServiceError", err)
	}
}
