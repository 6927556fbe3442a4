// ABOUTME: Query service tying embedder, dual retriever, and rank fuser together
// ABOUTME: One Search call per user query; fanout exceeds the final result count
package core

import (
	"context"
	"fmt"

	"github.com/fikalabs/pantry/internal/models"
)

// DefaultFanoutFactor multiplies the requested result count to size each
// underlying search. Fusion discards non-overlapping low-rank items, so each
// side fetches more candidates than the caller will see.
const DefaultFanoutFactor = 5

// DefaultSearchLimit is the result count when the caller does not specify one
const DefaultSearchLimit = 5

// QueryService answers natural-language and keyword queries over one tenant's
// documents.
type QueryService struct {
	embedder     Embedder
	retriever    *Retriever
	fanoutFactor int
	rrfK         int
}

// NewQueryService creates a QueryService. Zero fanoutFactor or rrfK fall back
// to the package defaults.
func NewQueryService(embedder Embedder, retriever *Retriever, fanoutFactor, rrfK int) *QueryService {
	if fanoutFactor <= 0 {
		fanoutFactor = DefaultFanoutFactor
	}
	if rrfK <= 0 {
		rrfK = DefaultRRFK
	}
	return &QueryService{
		embedder:     embedder,
		retriever:    retriever,
		fanoutFactor: fanoutFactor,
		rrfK:         rrfK,
	}
}

// Search embeds the query, runs both searches, and returns the fused ranking
// truncated to limit.
func (q *QueryService) Search(ctx context.Context, tenantID, query string, limit int) ([]models.RankedHit, error) {
	if tenantID == "" {
		return nil, Validationf("tenant id is required")
	}
	if query == "" {
		return nil, Validationf("query is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	queryVector, err := q.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	semantic, lexical, err := q.retriever.Retrieve(ctx, tenantID, queryVector, query, limit*q.fanoutFactor)
	if err != nil {
		return nil, err
	}

	return Fuse(semantic, lexical, q.rrfK, limit), nil
}
