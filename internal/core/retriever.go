// ABOUTME: Runs tenant-scoped semantic and lexical searches in parallel
// ABOUTME: Lexical unavailability degrades to empty results; semantic failure is fatal
package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fikalabs/pantry/internal/models"
)

// Retriever issues the two underlying searches for a hybrid query
type Retriever struct {
	store   Store
	timeout time.Duration // per-branch deadline; zero means caller's context only
}

// NewRetriever creates a Retriever backed by the given store
func NewRetriever(store Store, timeout time.Duration) *Retriever {
	return &Retriever{store: store, timeout: timeout}
}

// Retrieve runs the semantic and lexical searches concurrently, each capped
// at fanoutLimit. The lexical branch returns empty results when its index is
// missing or its deadline expires; any semantic failure fails the call.
func (r *Retriever) Retrieve(ctx context.Context, tenantID string, queryVector []float32, queryText string, fanoutLimit int) (semantic, lexical []models.ScoredChunk, err error) {
	if tenantID == "" {
		return nil, nil, Validationf("tenant id is required")
	}
	if fanoutLimit <= 0 {
		return nil, nil, Validationf("fanout limit must be positive, got %d", fanoutLimit)
	}

	var (
		wg          sync.WaitGroup
		semErr      error
		lexErr      error
		semanticRes []models.ScoredChunk
		lexicalRes  []models.ScoredChunk
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		branchCtx, cancel := r.branchContext(ctx)
		defer cancel()
		semanticRes, semErr = r.store.SemanticSearch(branchCtx, tenantID, queryVector, fanoutLimit)
	}()

	go func() {
		defer wg.Done()
		branchCtx, cancel := r.branchContext(ctx)
		defer cancel()
		lexicalRes, lexErr = r.store.LexicalSearch(branchCtx, tenantID, queryText, fanoutLimit)
	}()

	wg.Wait()

	if semErr != nil {
		return nil, nil, fmt.Errorf("semantic search: %w", semErr)
	}

	if lexErr != nil {
		if errors.Is(lexErr, ErrIndexUnavailable) || errors.Is(lexErr, context.DeadlineExceeded) {
			log.Printf("lexical search degraded to empty results for tenant %s: %v", tenantID, lexErr)
			lexicalRes = nil
		} else {
			return nil, nil, fmt.Errorf("lexical search: %w", lexErr)
		}
	}

	return semanticRes, lexicalRes, nil
}

func (r *Retriever) branchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout > 0 {
		return context.WithTimeout(ctx, r.timeout)
	}
	return context.WithCancel(ctx)
}
