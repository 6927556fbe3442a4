// ABOUTME: Shared helpers for CLI commands: service wiring and display formatting
// ABOUTME: The store handle is opened once per process and shared by all services
package commands

import (
	"fmt"
	"sync"
	"time"

	"github.com/fikalabs/pantry/internal/config"
	"github.com/fikalabs/pantry/internal/core"
	"github.com/fikalabs/pantry/internal/llm"
	"github.com/fikalabs/pantry/internal/storage/sqlite"
)

var (
	storeOnce sync.Once
	storeInst *sqlite.Store
	storeErr  error
)

// loadConfig reads the optional config file plus environment variables
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// openStore opens the shared SQLite store exactly once per process.
// Concurrent first-callers must not race to create duplicate handles.
func openStore(cfg *config.Config) (*sqlite.Store, error) {
	storeOnce.Do(func() {
		path := cfg.DBPath
		if path == "" {
			path = sqlite.DefaultDBPath()
		}
		storeInst, storeErr = sqlite.Open(path)
	})
	if storeErr != nil {
		return nil, fmt.Errorf("opening store: %w", storeErr)
	}
	return storeInst, nil
}

// newEmbedder builds the OpenAI embedding client from configuration
func newEmbedder(cfg *config.Config) (*llm.Client, error) {
	return llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		BatchSize:      cfg.EmbedBatchSize,
		BatchDelay:     cfg.EmbedBatchDelay,
		Timeout:        cfg.EmbedTimeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
}

// newLifecycle wires the document lifecycle manager
func newLifecycle(cfg *config.Config, store core.Store, embedder core.Embedder) *core.Lifecycle {
	return core.NewLifecycle(store, embedder, cfg.ChunkMaxChars, cfg.ChunkOverlap)
}

// newQueryService wires the hybrid query service
func newQueryService(cfg *config.Config, store core.Store, embedder core.Embedder) *core.QueryService {
	retriever := core.NewRetriever(store, cfg.SearchTimeout)
	return core.NewQueryService(embedder, retriever, cfg.FanoutFactor, cfg.RRFK)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
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
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns an error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
