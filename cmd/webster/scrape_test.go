package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hexbenjamin/webster"
	main "github.com/hexbenjamin/webster/cmd/webster"
	"github.com/hexbenjamin/webster/crawl"
	"github.com/hexbenjamin/webster/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates site with defaults derived from the URL", func(t *testing.T) {
		t.Parallel()

		var created *webster.Site
		sites := &mock.SiteService{
			CreateSiteFn: func(_ context.Context, site *webster.Site) error {
				site.ID = "site-1"
				created = site
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Sites:  sites,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com/docs", Depth: 3}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "example.com", created.Name)
		assert.Equal(t, "https://example.com/docs", created.RootURL)
		assert.Equal(t, 3, created.Depth)
		assert.Empty(t, created.IncludePaths)
		assert.Contains(t, stdout.String(), "Added site")
	})

	t.Run("normalizes include paths", func(t *testing.T) {
		t.Parallel()

		var created *webster.Site
		sites := &mock.SiteService{
			CreateSiteFn: func(_ context.Context, site *webster.Site) error {
				site.ID = "site-1"
				created = site
				return nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Sites:  sites,
		}

		cmd := &main.ScrapeCmd{
			URL:     "https://example.com",
			Name:    "example",
			Depth:   2,
			Include: []string{"docs", "/blog"},
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, []string{"/docs", "/blog"}, created.IncludePaths)
	})

	t.Run("preview shows URLs without creating a site", func(t *testing.T) {
		t.Parallel()

		createCalled := false
		sites := &mock.SiteService{
			CreateSiteFn: func(_ context.Context, _ *webster.Site) error {
				createCalled = true
				return nil
			},
		}

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, baseURL string, _ *webster.URLFilter) ([]string, error) {
				assert.Equal(t, "https://example.com/docs", baseURL)
				return []string{
					"https://example.com/docs/page1",
					"https://example.com/docs/page2",
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sites:    sites,
			Sitemaps: sitemaps,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com/docs", Preview: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.False(t, createCalled, "CreateSite should not be called in preview mode")
		assert.Contains(t, stdout.String(), "https://example.com/docs/page1")
		assert.Contains(t, stdout.String(), "https://example.com/docs/page2")
	})

	t.Run("with --force deletes existing site before creating", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		sites := &mock.SiteService{
			FindSitesFn: func(_ context.Context, filter webster.SiteFilter) ([]*webster.Site, error) {
				if filter.Name != nil && *filter.Name == "example.com" {
					return []*webster.Site{{ID: "old-id", Name: "example.com"}}, nil
				}
				return nil, nil
			},
			DeleteSiteFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
			CreateSiteFn: func(_ context.Context, site *webster.Site) error {
				site.ID = "new-id"
				return nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Sites:  sites,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com", Depth: 3, Force: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "old-id", deletedID)
	})

	t.Run("without --force a name conflict surfaces with a hint", func(t *testing.T) {
		t.Parallel()

		sites := &mock.SiteService{
			CreateSiteFn: func(_ context.Context, _ *webster.Site) error {
				return webster.Errorf(webster.ECONFLICT, `site "example.com" already exists`)
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Sites:  sites,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com", Depth: 3}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webster.ECONFLICT, webster.ErrorCode(err))
		assert.Contains(t, stderr.String(), "already exists")
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("returns error for invalid filter regex", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com", Filter: []string{"[invalid"}}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("returns error for URL without host", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.ScrapeCmd{URL: "not-a-url"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webster.EINVALID, webster.ErrorCode(err))
		assert.Contains(t, stderr.String(), "invalid URL")
	})

	t.Run("crawls, exports pages, and saves sitemap.json", func(t *testing.T) {
		t.Parallel()

		sites := &mock.SiteService{
			CreateSiteFn: func(_ context.Context, site *webster.Site) error {
				site.ID = "site-1"
				return nil
			},
		}

		var savedDocs []*webster.Document
		documents := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *webster.Document) error {
				doc.ID = "doc-" + doc.SourceURL
				savedDocs = append(savedDocs, doc)
				return nil
			},
		}

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *webster.URLFilter) ([]string, error) {
				return []string{
					"https://example.com/docs/page1",
					"https://example.com/docs/page2",
				}, nil
			},
		}

		crawler := &crawl.Crawler{
			Sitemaps: sitemaps,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body><h1>Test</h1><p>Content</p></body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*webster.ExtractResult, error) {
					return &webster.ExtractResult{Title: "Test Page", ContentHTML: "<p>Content</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) {
					return "# Content\n\nSome text", nil
				},
			},
			Documents: documents,
		}

		outDir := t.TempDir()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Sites:     sites,
			Documents: documents,
			Sitemaps:  sitemaps,
			Crawler:   crawler,
		}

		cmd := &main.ScrapeCmd{
			URL:       "https://example.com/docs",
			Depth:     3,
			Out:       outDir,
			OutFormat: "md",
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.Len(t, savedDocs, 2)
		assert.Equal(t, "site-1", savedDocs[0].SiteID)
		assert.Contains(t, stdout.String(), "Found 2 URLs")
		assert.Contains(t, stdout.String(), "Saved 2 pages")

		// Pages are mirrored to disk alongside a sitemap.json
		_, statErr := os.Stat(filepath.Join(outDir, "sitemap.json"))
		assert.NoError(t, statErr)
		entries, globErr := filepath.Glob(filepath.Join(outDir, "scrape", "*.md"))
		require.NoError(t, globErr)
		assert.Len(t, entries, 2)
	})

	t.Run("warns and defaults to html for unknown format", func(t *testing.T) {
		t.Parallel()

		sites := &mock.SiteService{
			CreateSiteFn: func(_ context.Context, site *webster.Site) error {
				site.ID = "site-1"
				return nil
			},
		}

		documents := &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *webster.Document) error {
				doc.ID = "doc-1"
				return nil
			},
		}

		crawler := &crawl.Crawler{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, _ string, _ *webster.URLFilter) ([]string, error) {
					return []string{"https://example.com/docs/page1"}, nil
				},
			},
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html><body>hi</body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) (*webster.ExtractResult, error) {
					return &webster.ExtractResult{ContentHTML: "<p>hi</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) { return "hi", nil },
			},
			Documents: documents,
		}

		outDir := t.TempDir()
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Sites:     sites,
			Documents: documents,
			Crawler:   crawler,
		}

		cmd := &main.ScrapeCmd{
			URL:       "https://example.com/docs",
			Depth:     3,
			Out:       outDir,
			OutFormat: "pdf",
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "unknown output format")

		entries, globErr := filepath.Glob(filepath.Join(outDir, "scrape", "*.html"))
		require.NoError(t, globErr)
		assert.Len(t, entries, 1)
	})
}
