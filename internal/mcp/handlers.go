// ABOUTME: MCP tool handler implementations for the pantry server
// ABOUTME: Thin argument parsing and JSON shaping around the core services
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fikalabs/pantry/internal/core"
	"github.com/fikalabs/pantry/internal/models"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	lifecycle *core.Lifecycle
	query     *core.QueryService
}

// SearchKnowledge handles the search_knowledge tool
func (h *Handlers) SearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tenantID, err := request.RequireString("tenant_id")
	if err != nil {
		return mcp.NewToolResultError("tenant_id argument is required and must be a string"), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	limit := request.GetInt("limit", core.DefaultSearchLimit)

	hits, err := h.query.Search(ctx, tenantID, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	type hitView struct {
		DocumentID string            `json:"document_id"`
		Title      string            `json:"title"`
		DocType    string            `json:"doc_type"`
		Section    string            `json:"section,omitempty"`
		Content    string            `json:"content"`
		Score      float64           `json:"score"`
		Provenance models.Provenance `json:"provenance"`
	}

	views := make([]hitView, len(hits))
	for i, hit := range hits {
		views[i] = hitView{
			DocumentID: hit.Chunk.DocumentID,
			Title:      hit.Chunk.Title,
			DocType:    string(hit.Chunk.DocType),
			Section:    hit.Chunk.Section,
			Content:    hit.Chunk.Content,
			Score:      hit.Score,
			Provenance: hit.Provenance,
		}
	}

	return toolResultJSON(map[string]interface{}{
		"query":   query,
		"results": views,
	})
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tenantID, err := request.RequireString("tenant_id")
	if err != nil {
		return mcp.NewToolResultError("tenant_id argument is required and must be a string"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	docType, err := models.ParseDocumentType(request.GetString("doc_type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := core.IngestOptions{
		Title: request.GetString("title", ""),
		Type:  docType,
		Tags:  splitTags(request.GetString("tags", "")),
	}

	result, err := h.lifecycle.Ingest(ctx, tenantID, content, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingest failed: %v", err)), nil
	}

	return toolResultJSON(result)
}

// ListDocuments handles the list_documents tool
func (h *Handlers) ListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tenantID, err := request.RequireString("tenant_id")
	if err != nil {
		return mcp.NewToolResultError("tenant_id argument is required and must be a string"), nil
	}

	docs, err := h.lifecycle.List(ctx, tenantID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}

	return toolResultJSON(map[string]interface{}{
		"tenant_id": tenantID,
		"documents": docs,
	})
}

// DeleteDocument handles the delete_document tool
func (h *Handlers) DeleteDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tenantID, err := request.RequireString("tenant_id")
	if err != nil {
		return mcp.NewToolResultError("tenant_id argument is required and must be a string"), nil
	}
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id argument is required and must be a string"), nil
	}

	result, err := h.lifecycle.Delete(ctx, tenantID, documentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}

	return toolResultJSON(result)
}

// GetStats handles the get_stats tool
func (h *Handlers) GetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := core.StatsFilter{
		TenantID:   request.GetString("tenant_id", ""),
		AllTenants: request.GetBool("all_tenants", false),
	}

	stats, err := h.lifecycle.Stats(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}

	return toolResultJSON(stats)
}

func toolResultJSON(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
