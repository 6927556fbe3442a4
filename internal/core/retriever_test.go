// ABOUTME: Tests for the parallel dual-search retriever
// ABOUTME: Uses an in-memory fake store to exercise degradation and failure paths
package core

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fikalabs/pantry/internal/models"
)

// fakeSearchStore implements Store with canned search results. Only the two
// search methods are exercised by the retriever.
type fakeSearchStore struct {
	semanticResults []models.ScoredChunk
	lexicalResults  []models.ScoredChunk
	semanticErr     error
	lexicalErr      error
	semanticDelay   time.Duration
	lexicalDelay    time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeSearchStore) SemanticSearch(ctx context.Context, tenantID string, vector []float32, limit int) ([]models.ScoredChunk, error) {
	f.track(f.semanticDelay)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.semanticResults, f.semanticErr
}

func (f *fakeSearchStore) LexicalSearch(ctx context.Context, tenantID, query string, limit int) ([]models.ScoredChunk, error) {
	f.track(f.lexicalDelay)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.lexicalResults, f.lexicalErr
}

func (f *fakeSearchStore) track(delay time.Duration) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		max := f.maxInFlight.Load()
		if cur <= max || f.maxInFlight.CompareAndSwap(max, cur) {
			break
		}
	}
	if delay > 0 {
		time.Sleep(delay)
	}
}

func (f *fakeSearchStore) InsertDocumentWithChunks(ctx context.Context, doc models.Document, chunks []models.Chunk) error {
	return nil
}

func (f *fakeSearchStore) ListDocuments(ctx context.Context, tenantID string) ([]models.DocumentSummary, error) {
	return nil, nil
}

func (f *fakeSearchStore) DeleteDocument(ctx context.Context, tenantID, documentID string) (DeleteResult, error) {
	return DeleteResult{}, nil
}

func (f *fakeSearchStore) CountChunks(ctx context.Context, tenantID, documentID string) (int, error) {
	return 0, nil
}

func (f *fakeSearchStore) Stats(ctx context.Context, filter StatsFilter) (Stats, error) {
	return Stats{}, nil
}

func (f *fakeSearchStore) Close() error { return nil }

func TestRetrieve_BothBranchesReturned(t *testing.T) {
	store := &fakeSearchStore{
		semanticResults: []models.ScoredChunk{scored(1, 0.9)},
		lexicalResults:  []models.ScoredChunk{scored(2, 5.0)},
	}
	r := NewRetriever(store, 0)

	semantic, lexical, err := r.Retrieve(context.Background(), "fika", []float32{0.1}, "espresso", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(semantic) != 1 || semantic[0].Chunk.ID != 1 {
		t.Errorf("unexpected semantic results: %+v", semantic)
	}
	if len(lexical) != 1 || lexical[0].Chunk.ID != 2 {
		t.Errorf("unexpected lexical results: %+v", lexical)
	}
}

func TestRetrieve_RunsBranchesConcurrently(t *testing.T) {
	store := &fakeSearchStore{
		semanticDelay: 50 * time.Millisecond,
		lexicalDelay:  50 * time.Millisecond,
	}
	r := NewRetriever(store, 0)

	start := time.Now()
	_, _, err := r.Retrieve(context.Background(), "fika", []float32{0.1}, "espresso", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 90*time.Millisecond {
		t.Errorf("branches appear sequential: took %v", elapsed)
	}
	if store.maxInFlight.Load() < 2 {
		t.Errorf("expected both searches in flight at once, max was %d", store.maxInFlight.Load())
	}
}

func TestRetrieve_LexicalIndexUnavailableDegrades(t *testing.T) {
	store := &fakeSearchStore{
		semanticResults: []models.ScoredChunk{scored(1, 0.9)},
		lexicalErr:      fmt.Errorf("search chunks: %w", ErrIndexUnavailable),
	}
	r := NewRetriever(store, 0)

	semantic, lexical, err := r.Retrieve(context.Background(), "fika", []float32{0.1}, "espresso", 10)
	if err != nil {
		t.Fatalf("expected degraded success, got error: %v", err)
	}
	if len(semantic) != 1 {
		t.Errorf("expected semantic results to survive, got %d", len(semantic))
	}
	if len(lexical) != 0 {
		t.Errorf("expected empty lexical results, got %d", len(lexical))
	}
}

func TestRetrieve_SemanticErrorIsFatal(t *testing.T) {
	wantErr := errors.New("connection reset")
	store := &fakeSearchStore{
		semanticErr:    wantErr,
		lexicalResults: []models.ScoredChunk{scored(2, 5.0)},
	}
	r := NewRetriever(store, 0)

	_, _, err := r.Retrieve(context.Background(), "fika", []float32{0.1}, "espresso", 10)
	if err == nil {
		t.Fatal("expected error from semantic branch")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped semantic error, got %v", err)
	}
}

func TestRetrieve_UnexpectedLexicalErrorIsFatal(t *testing.T) {
	wantErr := errors.New("disk I/O error")
	store := &fakeSearchStore{
		semanticResults: []models.ScoredChunk{scored(1, 0.9)},
		lexicalErr:      wantErr,
	}
	r := NewRetriever(store, 0)

	_, _, err := r.Retrieve(context.Background(), "fika", []float32{0.1}, "espresso", 10)
	if err == nil {
		t.Fatal("expected error from lexical branch")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped lexical error, got %v", err)
	}
}

func TestRetrieve_LexicalTimeoutDegrades(t *testing.T) {
	store := &fakeSearchStore{
		semanticResults: []models.ScoredChunk{scored(1, 0.9)},
		lexicalDelay:    100 * time.Millisecond,
	}
	r := NewRetriever(store, 20*time.Millisecond)

	semantic, lexical, err := r.Retrieve(context.Background(), "fika", []float32{0.1}, "espresso", 10)
	if err != nil {
		t.Fatalf("expected degraded success, got error: %v", err)
	}
	if len(semantic) != 1 {
		t.Errorf("expected semantic results, got %d", len(semantic))
	}
	if len(lexical) != 0 {
		t.Errorf("expected empty lexical results after timeout, got %d", len(lexical))
	}
}

func TestRetrieve_Validation(t *testing.T) {
	r := NewRetriever(&fakeSearchStore{}, 0)

	if _, _, err := r.Retrieve(context.Background(), "", []float32{0.1}, "q", 10); err == nil {
		t.Error("expected error for empty tenant id")
	}
	if _, _, err := r.Retrieve(context.Background(), "fika", []float32{0.1}, "q", 0); err == nil {
		t.Error("expected error for non-positive fanout limit")
	}
}
