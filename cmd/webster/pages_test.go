package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/hexbenjamin/webster"
	main "github.com/hexbenjamin/webster/cmd/webster"
	"github.com/hexbenjamin/webster/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagesCmd_Run(t *testing.T) {
	t.Parallel()

	site := &webster.Site{ID: "site-1", Name: "example.com", RootURL: "https://example.com"}

	t.Run("lists pages in summary mode", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, filter webster.DocumentFilter) ([]*webster.Document, error) {
				require.NotNil(t, filter.SiteID)
				assert.Equal(t, "site-1", *filter.SiteID)
				assert.Equal(t, webster.SortByPosition, filter.SortBy)
				return []*webster.Document{
					{ID: "doc-1", Title: "Getting Started", SourceURL: "https://example.com/docs/start", Position: 0},
					{ID: "doc-2", Title: "API Reference", SourceURL: "https://example.com/docs/api", Position: 1},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Sites:     siteServiceWith(site),
			Documents: documents,
		}

		cmd := &main.PagesCmd{Site: "example.com"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Pages for example.com (2 total)")
		assert.Contains(t, stdout.String(), "1. Getting Started")
		assert.Contains(t, stdout.String(), "2. API Reference")
		assert.Contains(t, stdout.String(), "https://example.com/docs/api")
	})

	t.Run("shows full content with --full flag", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, _ webster.DocumentFilter) ([]*webster.Document, error) {
				return []*webster.Document{
					{ID: "doc-1", Title: "Getting Started", Content: "# Welcome\n\nStart here.", Position: 0},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Sites:     siteServiceWith(site),
			Documents: documents,
		}

		cmd := &main.PagesCmd{Site: "example.com", Full: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "## Document: Getting Started")
		assert.Contains(t, stdout.String(), "Start here.")
	})

	t.Run("returns error when site has no pages", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, _ webster.DocumentFilter) ([]*webster.Document, error) {
				return nil, nil
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Sites:     siteServiceWith(site),
			Documents: documents,
		}

		cmd := &main.PagesCmd{Site: "example.com"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webster.ENOTFOUND, webster.ErrorCode(err))
		assert.Contains(t, stderr.String(), "has no pages")
		assert.Contains(t, stderr.String(), "webster scrape")
	})
}
