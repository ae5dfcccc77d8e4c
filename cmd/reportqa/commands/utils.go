// ABOUTME: Shared wiring helpers for CLI commands
// ABOUTME: Builds the pipeline engine and stores from environment config
package commands

import (
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/carelens/reportqa/internal/config"
	"github.com/carelens/reportqa/internal/llm"
	"github.com/carelens/reportqa/internal/rag"
	"github.com/carelens/reportqa/internal/storage/sqlite"
	"github.com/carelens/reportqa/internal/vectorstore/memory"
	"github.com/carelens/reportqa/internal/vectorstore/pinecone"
)

// pipeline bundles everything a command needs to serve requests.
type pipeline struct {
	engine  *rag.Engine
	db      *sqlite.DB
	users   *sqlite.UserStore
	history *sqlite.DiagnosisStore
	cfg     *config.Config
}

func (p *pipeline) close() {
	if err := p.db.Close(); err != nil {
		log.Printf("Warning: error closing database: %v", err)
	}
}

// buildPipeline wires the engine and stores from config. The vector index
// is Pinecone when PINECONE_INDEX_HOST is set, otherwise an in-process
// index that lives only as long as this process.
func buildPipeline(cfg *config.Config) (*pipeline, error) {
	client, err := llm.New(llm.Config{
		APIKey:         cfg.OpenAIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	var index rag.Index
	if cfg.PineconeHost != "" {
		index = pinecone.New(pinecone.Config{
			Host:      cfg.PineconeHost,
			APIKey:    cfg.PineconeAPIKey,
			Namespace: cfg.PineconeNamespace,
			Timeout:   15 * time.Second,
		})
	} else {
		if !quiet {
			log.Println("Warning: PINECONE_INDEX_HOST not set - using in-process index, documents will not survive restart")
		}
		index = memory.New()
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	history := sqlite.NewDiagnosisStore(db)
	engine := rag.NewEngine(
		rag.NewIngestor(client, index,
			rag.WithChunkSize(cfg.ChunkSize),
			rag.WithEmbedConcurrency(cfg.EmbedConcurrency)),
		rag.NewRetriever(client, index),
		rag.NewSynthesizer(client),
		rag.WithHistory(history),
		rag.WithTopK(cfg.TopK),
	)

	return &pipeline{
		engine:  engine,
		db:      db,
		users:   sqlite.NewUserStore(db),
		history: history,
		cfg:     cfg,
	}, nil
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}
