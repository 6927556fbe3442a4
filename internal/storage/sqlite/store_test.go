// ABOUTME: Store tests against an in-memory database: CRUD, atomicity, stats
// ABOUTME: Exercises the tenant predicate on every operation
package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fikalabs/pantry/internal/core"
	"github.com/fikalabs/pantry/internal/models"
)

func newTestDB(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testDocument(tenantID, title string, docType models.DocumentType, chunkContents ...string) (models.Document, []models.Chunk) {
	now := time.Now().UTC()
	doc := models.Document{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Title:      title,
		Type:       docType,
		ChunkCount: len(chunkContents),
		Tags:       []string{"test"},
		CreatedAt:  now,
	}
	chunks := make([]models.Chunk, len(chunkContents))
	for i, content := range chunkContents {
		chunks[i] = models.Chunk{
			TenantID:   tenantID,
			DocumentID: doc.ID,
			Content:    content,
			Embedding:  []float32{float32(i), 1, 0.5},
			Position:   i,
			DocType:    docType,
			Title:      title,
			Tags:       doc.Tags,
			CreatedAt:  now,
		}
	}
	return doc, chunks
}

func TestInsertAndListDocuments(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	doc, chunks := testDocument("fika", "Allergen Matrix", models.DocTypePolicy, "gluten in buns", "nuts in pesto")
	require.NoError(t, store.InsertDocumentWithChunks(ctx, doc, chunks))

	summaries, err := store.ListDocuments(ctx, "fika")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, doc.ID, summaries[0].ID)
	assert.Equal(t, "Allergen Matrix", summaries[0].Title)
	assert.Equal(t, models.DocTypePolicy, summaries[0].Type)
	assert.Equal(t, 2, summaries[0].ChunkCount)
	assert.Equal(t, []string{"test"}, summaries[0].Tags)

	n, err := store.CountChunks(ctx, "fika", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListDocuments_MostRecentFirst(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	older, olderChunks := testDocument("fika", "Old Menu", models.DocTypeMenu, "last season")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.InsertDocumentWithChunks(ctx, older, olderChunks))

	newer, newerChunks := testDocument("fika", "New Menu", models.DocTypeMenu, "this season")
	require.NoError(t, store.InsertDocumentWithChunks(ctx, newer, newerChunks))

	summaries, err := store.ListDocuments(ctx, "fika")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "New Menu", summaries[0].Title)
	assert.Equal(t, "Old Menu", summaries[1].Title)
}

func TestListDocuments_TenantScoped(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	doc, chunks := testDocument("fika", "Ours", models.DocTypeManual, "content")
	require.NoError(t, store.InsertDocumentWithChunks(ctx, doc, chunks))

	summaries, err := store.ListDocuments(ctx, "bistro")
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestInsert_RollsBackOnDuplicateDocument(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	doc, chunks := testDocument("fika", "Handbook", models.DocTypeManual, "one", "two")
	require.NoError(t, store.InsertDocumentWithChunks(ctx, doc, chunks))

	// Same primary key again: the insert must fail and leave the original
	// document and chunk count untouched.
	dup := doc
	dupChunks := make([]models.Chunk, len(chunks))
	copy(dupChunks, chunks)
	err := store.InsertDocumentWithChunks(ctx, dup, dupChunks)
	require.Error(t, err)
	var serr *core.StoreError
	assert.ErrorAs(t, err, &serr)

	n, err := store.CountChunks(ctx, "fika", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	summaries, err := store.ListDocuments(ctx, "fika")
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestDeleteDocument(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	doc, chunks := testDocument("fika", "Closing Duties", models.DocTypeSOP, "wipe counters", "lock doors", "set alarm")
	require.NoError(t, store.InsertDocumentWithChunks(ctx, doc, chunks))

	res, err := store.DeleteDocument(ctx, "fika", doc.ID)
	require.NoError(t, err)
	assert.True(t, res.DocumentDeleted)
	assert.Equal(t, 3, res.ChunksDeleted)

	res, err = store.DeleteDocument(ctx, "fika", doc.ID)
	require.NoError(t, err)
	assert.False(t, res.DocumentDeleted)
	assert.Zero(t, res.ChunksDeleted)
}

func TestDeleteDocument_WrongTenantLeavesData(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	doc, chunks := testDocument("fika", "Recipes", models.DocTypeRecipe, "fold gently")
	require.NoError(t, store.InsertDocumentWithChunks(ctx, doc, chunks))

	res, err := store.DeleteDocument(ctx, "bistro", doc.ID)
	require.NoError(t, err)
	assert.False(t, res.DocumentDeleted)
	assert.Zero(t, res.ChunksDeleted)

	n, err := store.CountChunks(ctx, "fika", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStats(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	menu, menuChunks := testDocument("fika", "Menu", models.DocTypeMenu, "a", "b")
	require.NoError(t, store.InsertDocumentWithChunks(ctx, menu, menuChunks))
	sop, sopChunks := testDocument("fika", "SOP", models.DocTypeSOP, "c")
	require.NoError(t, store.InsertDocumentWithChunks(ctx, sop, sopChunks))
	other, otherChunks := testDocument("bistro", "Theirs", models.DocTypeMenu, "d", "e", "f")
	require.NoError(t, store.InsertDocumentWithChunks(ctx, other, otherChunks))

	stats, err := store.Stats(ctx, core.StatsFilter{TenantID: "fika"})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 3, stats.Chunks)
	assert.Equal(t, map[string]int{"menu": 1, "sop": 1}, stats.ByType)

	all, err := store.Stats(ctx, core.StatsFilter{AllTenants: true})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Documents)
	assert.Equal(t, 6, all.Chunks)
	assert.Equal(t, 2, all.ByType["menu"])

	_, err = store.Stats(ctx, core.StatsFilter{})
	require.Error(t, err)
}

func TestVectorEncodingRoundTrip(t *testing.T) {
	vecs := [][]float32{
		nil,
		{0},
		{1.5, -2.25, 0.000123, 1e9},
	}
	for _, vec := range vecs {
		decoded, err := decodeVector(encodeVector(vec))
		require.NoError(t, err)
		assert.Equal(t, len(vec), len(decoded))
		for i := range vec {
			assert.Equal(t, vec[i], decoded[i])
		}
	}

	_, err := decodeVector([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}
