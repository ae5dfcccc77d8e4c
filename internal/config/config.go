// ABOUTME: Centralized configuration for the report QA service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the service
type Config struct {
	// HTTP settings
	Addr           string
	MaxUploadBytes int64

	// OpenAI settings
	OpenAIKey      string
	OpenAIBaseURL  string
	ChatModel      string
	EmbeddingModel string

	// Pinecone settings
	PineconeHost      string
	PineconeAPIKey    string
	PineconeNamespace string

	// Pipeline settings
	ChunkSize        int
	TopK             int
	EmbedConcurrency int

	// Auth settings
	JWTSecret string
	TokenTTL  time.Duration

	// Storage settings
	DBPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Addr:              getEnv("REPORTQA_ADDR", ":8000"),
		MaxUploadBytes:    int64(getEnvInt("REPORTQA_MAX_UPLOAD_MB", 10)) << 20,
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		ChatModel:         getEnv("REPORTQA_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnv("REPORTQA_EMBEDDING_MODEL", "text-embedding-3-small"),
		PineconeHost:      os.Getenv("PINECONE_INDEX_HOST"),
		PineconeAPIKey:    os.Getenv("PINECONE_API_KEY"),
		PineconeNamespace: getEnv("PINECONE_NAMESPACE", ""),
		ChunkSize:         getEnvInt("REPORTQA_CHUNK_SIZE", 800),
		TopK:              getEnvInt("REPORTQA_TOP_K", 5),
		EmbedConcurrency:  getEnvInt("EMBED_CONCURRENCY", 4),
		JWTSecret:         getEnv("JWT_SECRET", "change-this"),
		TokenTTL:          getEnvDuration("JWT_TTL", 24*time.Hour),
		DBPath:            getEnv("REPORTQA_DB_PATH", ""),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("REPORTQA_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("REPORTQA_TOP_K must be positive, got %d", c.TopK)
	}
	if c.EmbedConcurrency < 1 || c.EmbedConcurrency > 64 {
		return fmt.Errorf("EMBED_CONCURRENCY must be 1-64, got %d", c.EmbedConcurrency)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
