// ABOUTME: OpenAI-backed gateways for embeddings and answer generation
// ABOUTME: No internal retries; retry policy belongs to the callers
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/carelens/reportqa/internal/rag"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for answer generation
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// Config holds configuration for the OpenAI client
type Config struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
}

// Client wraps the OpenAI API for the two collaborator contracts the
// pipeline consumes: embed and complete. It implements rag.Embedder and
// rag.Generator.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
}

// New creates a Client from config, applying model defaults.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:         openai.NewClientWithConfig(clientConfig),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
	}, nil
}

// Embed converts text to a fixed-dimension vector. Transport failures,
// quota rejections, and responses missing the vector all surface as
// EmbeddingServiceError.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: c.embeddingModel,
	})
	if err != nil {
		return nil, &rag.EmbeddingServiceError{Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &rag.EmbeddingServiceError{Err: errors.New("no embedding in response")}
	}

	embedding32 := resp.Data[0].Embedding
	embedding64 := make([]float64, len(embedding32))
	for i, v := range embedding32 {
		embedding64[i] = float64(v)
	}
	return embedding64, nil
}

// Complete runs a single-shot chat completion and returns the raw text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", &rag.GenerationServiceError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &rag.GenerationServiceError{Err: errors.New("no completion choices returned")}
	}
	return resp.Choices[0].Message.Content, nil
}
