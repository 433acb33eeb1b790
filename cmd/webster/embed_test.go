package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/hexbenjamin/webster"
	main "github.com/hexbenjamin/webster/cmd/webster"
	"github.com/hexbenjamin/webster/index"
	"github.com/hexbenjamin/webster/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteServiceWith(site *webster.Site) *mock.SiteService {
	return &mock.SiteService{
		FindSitesFn: func(_ context.Context, filter webster.SiteFilter) ([]*webster.Site, error) {
			if site != nil && filter.Name != nil && *filter.Name == site.Name {
				return []*webster.Site{site}, nil
			}
			return nil, nil
		},
	}
}

func TestEmbedCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("indexes the site and reports totals", func(t *testing.T) {
		t.Parallel()

		site := &webster.Site{ID: "site-1", Name: "example.com", RootURL: "https://example.com"}

		indexer := &index.Indexer{
			Documents: &mock.DocumentService{
				FindDocumentsFn: func(_ context.Context, _ webster.DocumentFilter) ([]*webster.Document, error) {
					return []*webster.Document{
						{ID: "doc-1", SourceURL: "https://example.com/a", Content: "Some page content."},
					}, nil
				},
			},
			Chunks: &mock.ChunkService{
				CreateChunksFn:       func(_ context.Context, _ []*webster.Chunk) error { return nil },
				DeleteChunksBySiteFn: func(_ context.Context, _ string) error { return nil },
			},
			Embedder: &mock.Embedder{
				EmbedBatchFn: func(_ context.Context, texts []string) ([][]float32, error) {
					vecs := make([][]float32, len(texts))
					for i := range texts {
						vecs[i] = []float32{1, 2}
					}
					return vecs, nil
				},
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Sites:   siteServiceWith(site),
			Indexer: indexer,
		}

		cmd := &main.EmbedCmd{Site: "example.com"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Indexed 1 pages")
		assert.Contains(t, stdout.String(), "webster ask")
	})

	t.Run("hints at scrape when site has no pages", func(t *testing.T) {
		t.Parallel()

		site := &webster.Site{ID: "site-1", Name: "example.com", RootURL: "https://example.com"}

		indexer := &index.Indexer{
			Documents: &mock.DocumentService{
				FindDocumentsFn: func(_ context.Context, _ webster.DocumentFilter) ([]*webster.Document, error) {
					return nil, nil
				},
			},
			Chunks:   &mock.ChunkService{},
			Embedder: &mock.Embedder{},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Sites:   siteServiceWith(site),
			Indexer: indexer,
		}

		cmd := &main.EmbedCmd{Site: "example.com"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webster.ENOTFOUND, webster.ErrorCode(err))
		assert.Contains(t, stderr.String(), "webster scrape")
	})

	t.Run("returns error when site not found", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Sites:  siteServiceWith(nil),
		}

		cmd := &main.EmbedCmd{Site: "nonexistent"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "not found")
		assert.Contains(t, stderr.String(), "webster list")
	})
}
