package sqlite_test

import (
	"context"
	"testing"

	"github.com/hexbenjamin/webster"
	"github.com/hexbenjamin/webster/mock"
	"github.com/hexbenjamin/webster/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEmbedder returns the same vector for every query.
func fixedEmbedder(vec []float32) *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
			return vec, nil
		},
	}
}

func seedChunks(t *testing.T, db *sqlite.DB, siteID, docID string, chunks []*webster.Chunk) {
	t.Helper()
	for _, c := range chunks {
		c.SiteID = siteID
		c.DocumentID = docID
	}
	require.NoError(t, sqlite.NewChunkService(db).CreateChunks(context.Background(), chunks))
}

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("ranks by cosine similarity", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		site := MustCreateSite(t, db, "docs")
		doc := MustCreateDocument(t, db, site.ID, "https://d.example.com/a")

		seedChunks(t, db, site.ID, doc.ID, []*webster.Chunk{
			{Content: "orthogonal", Embedding: []float32{0, 1}},
			{Content: "aligned", Embedding: []float32{1, 0}},
			{Content: "diagonal", Embedding: []float32{1, 1}},
		})

		s := sqlite.NewSearchService(db, fixedEmbedder([]float32{1, 0}))
		results, err := s.Search(context.Background(), "query", webster.SearchOptions{
			SiteIDs: []string{site.ID},
		})
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, "aligned", results[0].Chunk.Content)
		assert.Equal(t, "diagonal", results[1].Chunk.Content)
		assert.Equal(t, "orthogonal", results[2].Chunk.Content)
	})

	t.Run("applies min score and limit", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		site := MustCreateSite(t, db, "docs")
		doc := MustCreateDocument(t, db, site.ID, "https://d.example.com/a")

		seedChunks(t, db, site.ID, doc.ID, []*webster.Chunk{
			{Content: "close", Embedding: []float32{1, 0}},
			{Content: "near", Embedding: []float32{0.9, 0.1}},
			{Content: "far", Embedding: []float32{0, 1}},
		})

		s := sqlite.NewSearchService(db, fixedEmbedder([]float32{1, 0}))
		results, err := s.Search(context.Background(), "query", webster.SearchOptions{
			SiteIDs:  []string{site.ID},
			Limit:    1,
			MinScore: 0.5,
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "close", results[0].Chunk.Content)
	})

	t.Run("scopes to requested sites", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		siteA := MustCreateSite(t, db, "alpha")
		siteB := MustCreateSite(t, db, "beta")
		docA := MustCreateDocument(t, db, siteA.ID, "https://a.example.com/x")
		docB := MustCreateDocument(t, db, siteB.ID, "https://b.example.com/y")

		seedChunks(t, db, siteA.ID, docA.ID, []*webster.Chunk{
			{Content: "from alpha", Embedding: []float32{1, 0}},
		})
		seedChunks(t, db, siteB.ID, docB.ID, []*webster.Chunk{
			{Content: "from beta", Embedding: []float32{1, 0}},
		})

		s := sqlite.NewSearchService(db, fixedEmbedder([]float32{1, 0}))
		results, err := s.Search(context.Background(), "query", webster.SearchOptions{
			SiteIDs: []string{siteA.ID},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "from alpha", results[0].Chunk.Content)
	})

	t.Run("skips chunks without embeddings", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		site := MustCreateSite(t, db, "docs")
		doc := MustCreateDocument(t, db, site.ID, "https://d.example.com/a")

		seedChunks(t, db, site.ID, doc.ID, []*webster.Chunk{
			{Content: "embedded", Embedding: []float32{1, 0}},
			{Content: "not embedded"},
		})

		s := sqlite.NewSearchService(db, fixedEmbedder([]float32{1, 0}))
		results, err := s.Search(context.Background(), "query", webster.SearchOptions{
			SiteIDs: []string{site.ID},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "embedded", results[0].Chunk.Content)
	})

	t.Run("empty query returns EINVALID", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewSearchService(db, fixedEmbedder([]float32{1}))
		_, err := s.Search(context.Background(), "", webster.SearchOptions{})
		require.Error(t, err)
		assert.Equal(t, webster.EINVALID, webster.ErrorCode(err))
	})
}
