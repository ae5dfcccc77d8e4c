// ABOUTME: Standalone entry point for the report QA HTTP API
// ABOUTME: Wires config, OpenAI, Pinecone, and SQLite, then serves
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/carelens/reportqa/internal/auth"
	"github.com/carelens/reportqa/internal/config"
	"github.com/carelens/reportqa/internal/llm"
	"github.com/carelens/reportqa/internal/rag"
	"github.com/carelens/reportqa/internal/server"
	"github.com/carelens/reportqa/internal/storage/sqlite"
	"github.com/carelens/reportqa/internal/vectorstore/memory"
	"github.com/carelens/reportqa/internal/vectorstore/pinecone"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - uploads and diagnosis will fail")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := llm.New(llm.Config{
		APIKey:         cfg.OpenAIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
	})
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
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
		log.Println("Warning: PINECONE_INDEX_HOST not set - using in-process index, documents will not survive restart")
		index = memory.New()
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

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

	srv := server.New(engine, sqlite.NewUserStore(db), history, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL))
	srv.SetMaxUploadBytes(cfg.MaxUploadBytes)

	log.Printf("reportqa API listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
