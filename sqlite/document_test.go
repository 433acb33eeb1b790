package sqlite_test

import (
	"context"
	"testing"

	"github.com/hexbenjamin/webster"
	"github.com/hexbenjamin/webster/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, fetch time, and content hash", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		site := MustCreateSite(t, db, "docs")

		doc := &webster.Document{
			SiteID:    site.ID,
			SourceURL: "https://docs.example.com/intro",
			Title:     "Intro",
			Content:   "# Intro\n\nWelcome.",
			Depth:     1,
		}
		require.NoError(t, sqlite.NewDocumentService(db).CreateDocument(context.Background(), doc))

		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.ContentHash)
		assert.False(t, doc.FetchedAt.IsZero())
	})

	t.Run("identical content hashes identically", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		site := MustCreateSite(t, db, "docs")
		s := sqlite.NewDocumentService(db)

		a := &webster.Document{SiteID: site.ID, SourceURL: "https://x.example.com/a", Content: "same"}
		b := &webster.Document{SiteID: site.ID, SourceURL: "https://x.example.com/b", Content: "same"}
		require.NoError(t, s.CreateDocument(context.Background(), a))
		require.NoError(t, s.CreateDocument(context.Background(), b))

		assert.Equal(t, a.ContentHash, b.ContentHash)
	})

	t.Run("rejects document without site", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		err := sqlite.NewDocumentService(db).CreateDocument(context.Background(), &webster.Document{
			SourceURL: "https://docs.example.com/x",
		})
		require.Error(t, err)
		assert.Equal(t, webster.EINVALID, webster.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	t.Run("filters by site and sorts by position", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		ctx := context.Background()
		s := sqlite.NewDocumentService(db)

		site := MustCreateSite(t, db, "docs")
		other := MustCreateSite(t, db, "blog")

		for i, u := range []string{"https://d.example.com/b", "https://d.example.com/a"} {
			require.NoError(t, s.CreateDocument(ctx, &webster.Document{
				SiteID:    site.ID,
				SourceURL: u,
				Content:   "x",
				Position:  1 - i, // store out of order
			}))
		}
		require.NoError(t, s.CreateDocument(ctx, &webster.Document{
			SiteID:    other.ID,
			SourceURL: "https://b.example.com/post",
			Content:   "y",
		}))

		docs, err := s.FindDocuments(ctx, webster.DocumentFilter{
			SiteID: &site.ID,
			SortBy: webster.SortByPosition,
		})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "https://d.example.com/a", docs[0].SourceURL)
		assert.Equal(t, "https://d.example.com/b", docs[1].SourceURL)
	})

	t.Run("filters by source URL", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		site := MustCreateSite(t, db, "docs")
		MustCreateDocument(t, db, site.ID, "https://d.example.com/one")
		MustCreateDocument(t, db, site.ID, "https://d.example.com/two")

		u := "https://d.example.com/two"
		docs, err := sqlite.NewDocumentService(db).FindDocuments(context.Background(), webster.DocumentFilter{SourceURL: &u})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, u, docs[0].SourceURL)
	})
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	t.Parallel()

	t.Run("removes document and its chunks", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		ctx := context.Background()

		site := MustCreateSite(t, db, "docs")
		doc := MustCreateDocument(t, db, site.ID, "https://d.example.com/a")

		chunks := sqlite.NewChunkService(db)
		require.NoError(t, chunks.CreateChunk(ctx, &webster.Chunk{
			DocumentID: doc.ID,
			SiteID:     site.ID,
			Content:    "body",
		}))

		require.NoError(t, sqlite.NewDocumentService(db).DeleteDocument(ctx, doc.ID))

		remaining, err := chunks.FindChunks(ctx, webster.ChunkFilter{DocumentID: &doc.ID})
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("returns ENOTFOUND for missing document", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		err := sqlite.NewDocumentService(db).DeleteDocument(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, webster.ENOTFOUND, webster.ErrorCode(err))
	})
}

func TestDocumentService_DeleteDocumentsBySite(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	ctx := context.Background()
	s := sqlite.NewDocumentService(db)

	site := MustCreateSite(t, db, "docs")
	other := MustCreateSite(t, db, "blog")
	MustCreateDocument(t, db, site.ID, "https://d.example.com/a")
	MustCreateDocument(t, db, site.ID, "https://d.example.com/b")
	MustCreateDocument(t, db, other.ID, "https://b.example.com/post")

	require.NoError(t, s.DeleteDocumentsBySite(ctx, site.ID))

	docs, err := s.FindDocuments(ctx, webster.DocumentFilter{SiteID: &site.ID})
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = s.FindDocuments(ctx, webster.DocumentFilter{SiteID: &other.ID})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
