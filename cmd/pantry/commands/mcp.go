// ABOUTME: MCP command starts the Model Context Protocol server over stdio
// ABOUTME: Exposes the knowledge base tools to LLM agents
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/fikalabs/pantry/internal/mcp"
)

// NewMCPCmd creates the mcp command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Run pantry as an MCP (Model Context Protocol) server over stdio,
exposing search, ingest, list, delete, and stats tools to LLM agents.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  pantry mcp

  # Configure in the agent host's MCP settings:
  # { "mcpServers": { "pantry": { "command": "pantry", "args": ["mcp"] } } }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("initializing embedding client: %w", err)
	}

	lifecycle := newLifecycle(cfg, store, embedder)
	query := newQueryService(cfg, store, embedder)

	server := mcpserver.NewMCPServer("Pantry Knowledge Base", versionInfo.Version)
	mcp.RegisterTools(server, lifecycle, query)

	if !quiet {
		log.Println("Pantry MCP server starting on stdio...")
	}
	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
