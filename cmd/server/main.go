// ABOUTME: Main entry point for the pantry MCP server with stdio transport
// ABOUTME: Initializes the store, embedding client, and core services
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/fikalabs/pantry/internal/config"
	"github.com/fikalabs/pantry/internal/core"
	"github.com/fikalabs/pantry/internal/llm"
	"github.com/fikalabs/pantry/internal/mcp"
	"github.com/fikalabs/pantry/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	embedder, err := llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		BatchSize:      cfg.EmbedBatchSize,
		BatchDelay:     cfg.EmbedBatchDelay,
		Timeout:        cfg.EmbedTimeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to initialize embedding client: %v", err)
	}

	lifecycle := core.NewLifecycle(store, embedder, cfg.ChunkMaxChars, cfg.ChunkOverlap)
	retriever := core.NewRetriever(store, cfg.SearchTimeout)
	query := core.NewQueryService(embedder, retriever, cfg.FanoutFactor, cfg.RRFK)

	server := mcpserver.NewMCPServer("Pantry Knowledge Base", "0.1.0")
	mcp.RegisterTools(server, lifecycle, query)

	log.Println("Pantry MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
