// ABOUTME: Document represents a whole ingested artifact owned by one tenant
// ABOUTME: Documents are immutable; edits are modeled as delete-then-reingest
package models

import (
	"fmt"
	"strings"
	"time"
)

// DocumentType classifies an ingested document
type DocumentType string

const (
	DocTypeMenu   DocumentType = "menu"
	DocTypeRecipe DocumentType = "recipe"
	DocTypeSOP    DocumentType = "sop"
	DocTypePolicy DocumentType = "policy"
	DocTypeManual DocumentType = "manual"
	DocTypeOther  DocumentType = "other"
)

// DocumentTypes lists all valid document types
var DocumentTypes = []DocumentType{
	DocTypeMenu, DocTypeRecipe, DocTypeSOP, DocTypePolicy, DocTypeManual, DocTypeOther,
}

// ParseDocumentType converts a string into a DocumentType, case-insensitively.
// An empty string defaults to "other".
func ParseDocumentType(s string) (DocumentType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DocTypeOther, nil
	}
	for _, dt := range DocumentTypes {
		if s == string(dt) {
			return dt, nil
		}
	}
	return "", fmt.Errorf("unknown document type %q (valid: menu, recipe, sop, policy, manual, other)", s)
}

// Document represents a whole ingested artifact
type Document struct {
	ID         string       `json:"id"`
	TenantID   string       `json:"tenant_id"`
	Title      string       `json:"title"`
	Type       DocumentType `json:"type"`
	Content    string       `json:"content,omitempty"`
	ChunkCount int          `json:"chunk_count"`
	Tags       []string     `json:"tags,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// DocumentSummary is the listing view of a Document (no full content)
type DocumentSummary struct {
	ID         string       `json:"id"`
	TenantID   string       `json:"tenant_id"`
	Title      string       `json:"title"`
	Type       DocumentType `json:"type"`
	ChunkCount int          `json:"chunk_count"`
	Tags       []string     `json:"tags,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}
