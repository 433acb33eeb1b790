package goquery_test

import (
	"testing"

	"github.com/hexbenjamin/webster"
	"github.com/hexbenjamin/webster/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorSelector_Name(t *testing.T) {
	t.Parallel()

	s := goquery.NewAnchorSelector()
	assert.Equal(t, "anchor", s.Name())
}

func TestAnchorSelector_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("extracts links from TOC elements with TOC priority", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<div class="toc">
	<a href="/docs/section1">Section 1</a>
	<a href="/docs/section2">Section 2</a>
</div>
</body>
</html>`

		s := goquery.NewAnchorSelector()
		links, err := s.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		require.Len(t, links, 2)

		assert.Equal(t, "https://example.com/docs/section1", links[0].URL)
		assert.Equal(t, webster.PriorityTOC, links[0].Priority)
		assert.Equal(t, "toc", links[0].Source)
	})

	t.Run("extracts links from nav elements with navigation priority", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav>
	<a href="/docs/guide">Guide</a>
</nav>
</body>
</html>`

		s := goquery.NewAnchorSelector()
		links, err := s.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		require.Len(t, links, 1)

		assert.Equal(t, "https://example.com/docs/guide", links[0].URL)
		assert.Equal(t, webster.PriorityNavigation, links[0].Priority)
		assert.Equal(t, "nav", links[0].Source)
	})

	t.Run("extracts bare anchors with fallback priority", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<div class="custom-layout">
	<a href="/page">Page</a>
</div>
</body>
</html>`

		s := goquery.NewAnchorSelector()
		links, err := s.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		require.Len(t, links, 1)

		assert.Equal(t, "https://example.com/page", links[0].URL)
		assert.Equal(t, webster.PriorityFallback, links[0].Priority)
		assert.Equal(t, "fallback", links[0].Source)
	})

	t.Run("does not downgrade TOC priority via fallback pass", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<div class="toc">
	<a href="/docs/guide">Guide in TOC</a>
</div>
<nav>
	<a href="/docs/guide">Guide in Nav</a>
</nav>
</body>
</html>`

		s := goquery.NewAnchorSelector()
		links, err := s.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		require.Len(t, links, 1)

		assert.Equal(t, "https://example.com/docs/guide", links[0].URL)
		assert.Equal(t, webster.PriorityTOC, links[0].Priority)
		assert.Equal(t, "toc", links[0].Source)
	})

	t.Run("filters external links", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav>
	<a href="/docs/internal">Internal</a>
	<a href="https://external.com/page">External</a>
	<a href="https://sub.example.com/page">Subdomain</a>
</nav>
</body>
</html>`

		s := goquery.NewAnchorSelector()
		links, err := s.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		require.Len(t, links, 1)

		assert.Equal(t, "https://example.com/docs/internal", links[0].URL)
	})

	t.Run("strips fragments and skips self links", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav>
	<a href="#section">Anchor only</a>
	<a href="/docs/page#heading">Page with fragment</a>
</nav>
</body>
</html>`

		s := goquery.NewAnchorSelector()
		links, err := s.ExtractLinks(html, "https://example.com/current")

		require.NoError(t, err)
		require.Len(t, links, 1)

		// The anchor-only link resolves to the current page and is dropped;
		// the other link survives with its fragment stripped.
		assert.Equal(t, "https://example.com/docs/page", links[0].URL)
	})

	t.Run("skips non-HTTP links", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav>
	<a href="/docs/valid">Valid</a>
	<a href="javascript:void(0)">JS Link</a>
	<a href="mailto:test@example.com">Email</a>
	<a href="tel:+15555555555">Phone</a>
</nav>
</body>
</html>`

		s := goquery.NewAnchorSelector()
		links, err := s.ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		require.Len(t, links, 1)

		assert.Equal(t, "https://example.com/docs/valid", links[0].URL)
	})

	t.Run("returns error for invalid base URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><nav><a href="/docs">Docs</a></nav></body></html>`

		s := goquery.NewAnchorSelector()
		_, err := s.ExtractLinks(html, "://invalid-url")

		require.Error(t, err)
		assert.Equal(t, webster.EINVALID, webster.ErrorCode(err))
	})

	t.Run("handles empty HTML", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewAnchorSelector()
		links, err := s.ExtractLinks("", "https://example.com")

		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
