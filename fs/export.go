// Package fs exports scraped pages to the local filesystem. Pages are
// written under a "scrape" subdirectory with cleaned-URL filenames, and
// a sitemap.json maps each filename back to its source URL.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hexbenjamin/webster"
)

// Format selects the on-disk representation of exported pages.
type Format string

// Supported export formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// ParseFormat parses an --out-format value. The boolean reports whether
// the input was recognized; unrecognized input yields FormatHTML so
// callers can warn and continue.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(s)) {
	case FormatHTML:
		return FormatHTML, true
	case FormatMarkdown:
		return FormatMarkdown, true
	default:
		return FormatHTML, false
	}
}

// CleanURL converts a URL into a flat filename:
// "https://" is stripped, "/" becomes "-", "." becomes "_",
// and ":" becomes "--".
func CleanURL(url string) string {
	s := strings.TrimPrefix(url, "https://")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, ".", "_")
	s = strings.ReplaceAll(s, ":", "--")
	return s
}

// Ensure Exporter implements webster.DocumentWriter at compile time.
var _ webster.DocumentWriter = (*Exporter)(nil)

// Exporter writes scraped pages to a directory and accumulates a sitemap.
// Exporter is safe for concurrent use.
type Exporter struct {
	dir    string
	format Format

	mu      sync.Mutex
	sitemap map[string]string
}

// NewExporter creates an Exporter that writes under dir.
func NewExporter(dir string, format Format) *Exporter {
	return &Exporter{
		dir:     dir,
		format:  format,
		sitemap: make(map[string]string),
	}
}

// CreateDocument writes one page to disk and records it in the sitemap.
// FormatHTML writes the raw fetched HTML; FormatMarkdown writes the
// converted content.
func (e *Exporter) CreateDocument(ctx context.Context, doc *webster.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	scrapeDir := filepath.Join(e.dir, "scrape")
	if err := os.MkdirAll(scrapeDir, 0755); err != nil {
		return err
	}

	name := CleanURL(doc.SourceURL)
	content := doc.RawHTML
	if e.format == FormatMarkdown {
		content = doc.Content
	}

	path := filepath.Join(scrapeDir, name+"."+string(e.format))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}

	e.mu.Lock()
	e.sitemap[name] = doc.SourceURL
	e.mu.Unlock()

	return nil
}

// SaveSitemap writes the accumulated sitemap to sitemap.json in the
// export directory.
func (e *Exporter) SaveSitemap() error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return err
	}

	e.mu.Lock()
	data, err := json.MarshalIndent(e.sitemap, "", "  ")
	e.mu.Unlock()
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(e.dir, "sitemap.json"), data, 0644)
}
