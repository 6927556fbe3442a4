// ABOUTME: MCP tool definitions and registration for the pantry server
// ABOUTME: Defines JSON schemas for the five knowledge-base tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/fikalabs/pantry/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, lifecycle *core.Lifecycle, query *core.QueryService) *Handlers {
	handlers := &Handlers{
		lifecycle: lifecycle,
		query:     query,
	}

	// 1. search_knowledge - hybrid search over one restaurant's documents
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search a restaurant's knowledge base (menus, SOPs, recipes, policies, CSV exports) and return the most relevant passages, ranked by hybrid semantic + keyword retrieval.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"tenant_id": map[string]interface{}{
					"type":        "string",
					"description": "Restaurant account to search",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language or keyword query",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of passages to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"tenant_id", "query"},
		},
	}, handlers.SearchKnowledge)

	// 2. ingest_document - store a free-form operational document
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a free-form operational document (menu, SOP, recipe, policy, manual) into a restaurant's knowledge base. The document is chunked, embedded, and indexed for retrieval.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"tenant_id": map[string]interface{}{
					"type":        "string",
					"description": "Restaurant account that owns the document",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Full document text",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Document title",
				},
				"doc_type": map[string]interface{}{
					"type":        "string",
					"description": "Document type: menu, recipe, sop, policy, manual, or other (default: other)",
				},
				"tags": map[string]interface{}{
					"type":        "string",
					"description": "Optional comma-separated tags",
				},
			},
			Required: []string{"tenant_id", "content"},
		},
	}, handlers.IngestDocument)

	// 3. list_documents - list a restaurant's documents
	server.AddTool(mcp.Tool{
		Name:        "list_documents",
		Description: "List a restaurant's ingested documents, most recent first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"tenant_id": map[string]interface{}{
					"type":        "string",
					"description": "Restaurant account to list",
				},
			},
			Required: []string{"tenant_id"},
		},
	}, handlers.ListDocuments)

	// 4. delete_document - remove a document and its chunks
	server.AddTool(mcp.Tool{
		Name:        "delete_document",
		Description: "Delete a document and all of its indexed chunks from a restaurant's knowledge base. Deleting a document that does not exist is a no-op.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"tenant_id": map[string]interface{}{
					"type":        "string",
					"description": "Restaurant account that owns the document",
				},
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Document id returned at ingestion time",
				},
			},
			Required: []string{"tenant_id", "document_id"},
		},
	}, handlers.DeleteDocument)

	// 5. get_stats - document and chunk counts
	server.AddTool(mcp.Tool{
		Name:        "get_stats",
		Description: "Get document and chunk counts, broken down by document type. Scoped to one restaurant unless all_tenants is explicitly set.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"tenant_id": map[string]interface{}{
					"type":        "string",
					"description": "Restaurant account to report on",
				},
				"all_tenants": map[string]interface{}{
					"type":        "boolean",
					"description": "Aggregate across all restaurants (explicit opt-in)",
					"default":     false,
				},
			},
		},
	}, handlers.GetStats)

	return handlers
}
