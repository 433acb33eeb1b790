// Package crawl implements the scraping pipeline: URL discovery via
// sitemaps or recursive link-following, concurrent fetching with retry
// and rate limiting, content extraction, and Markdown conversion.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/hexbenjamin/webster"
	"golang.org/x/sync/errgroup"
)

// Frontier configuration for recursive crawling.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// defaultMaxURLs limits the number of URLs processed to prevent runaway crawls.
	defaultMaxURLs = 1000
)

// ProgressType identifies the kind of progress event.
type ProgressType int

// Progress event types emitted during a crawl.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports crawl progress.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is called as URLs are processed.
type ProgressFunc func(ProgressEvent)

// Result summarizes a completed crawl.
type Result struct {
	Saved  int
	Failed int
	Bytes  int
	Tokens int
}

// Crawler scrapes a site into Markdown documents.
// Sitemap discovery is tried first; when a site publishes no sitemap the
// crawler falls back to recursive link-following bounded by the site's
// depth and include paths.
type Crawler struct {
	Sitemaps webster.SitemapService
	Fetcher  webster.Fetcher

	// RenderFetcher is an optional browser-rendering fetcher. When set,
	// the root page is fetched with both fetchers and the crawl uses
	// whichever produces more extractable content.
	RenderFetcher webster.Fetcher

	Extractor    webster.Extractor
	Converter    webster.Converter
	Documents    webster.DocumentService
	Export       webster.DocumentWriter // optional; mirrors saved pages to local files
	Links        webster.LinkSelector
	RateLimiter  webster.DomainLimiter
	TokenCounter webster.TokenCounter // optional; enables token reporting

	// Concurrency is the number of parallel fetch workers. Defaults to 10.
	Concurrency int

	// RetryDelays overrides the fetch retry backoff. Defaults to 1s, 2s, 4s.
	RetryDelays []time.Duration

	// MaxURLs caps the number of URLs processed. Defaults to 1000.
	MaxURLs int
}

// crawlResult carries the outcome of processing one URL.
type crawlResult struct {
	url        string
	depth      int
	title      string
	html       string
	markdown   string
	hash       string
	discovered []webster.DiscoveredLink
	err        error
}

// CrawlSite scrapes the site and saves each page as a document.
// The optional filter further restricts URLs beyond the site's scope.
func (c *Crawler) CrawlSite(ctx context.Context, site *webster.Site, filter *webster.URLFilter, progress ProgressFunc) (*Result, error) {
	scope, err := NewScope(site.RootURL, site.IncludePaths)
	if err != nil {
		return nil, fmt.Errorf("invalid root URL: %w", err)
	}

	if c.RenderFetcher != nil {
		c.Fetcher = c.pickFetcher(ctx, site.RootURL)
	}

	// Sitemap-first discovery.
	if c.Sitemaps != nil {
		urls, err := c.Sitemaps.DiscoverURLs(ctx, site.RootURL, filter)
		if err == nil && len(urls) > 0 {
			var inScope []string
			for _, u := range urls {
				if scope.Allows(u) {
					inScope = append(inScope, u)
				}
			}
			if len(inScope) > 0 {
				return c.crawlList(ctx, site, inScope, progress)
			}
		}
	}

	return c.crawlRecursive(ctx, site, scope, filter, progress)
}

// pickFetcher probes the URL with the plain and rendering fetchers and
// compares their extracted content. The rendering fetcher wins when it
// yields significantly more content, which signals a site that builds
// its pages with JavaScript. Either fetcher failing settles the choice
// on the other.
func (c *Crawler) pickFetcher(ctx context.Context, probeURL string) webster.Fetcher {
	plainHTML, err := c.Fetcher.Fetch(ctx, probeURL)
	if err != nil {
		return c.RenderFetcher
	}

	renderedHTML, err := c.RenderFetcher.Fetch(ctx, probeURL)
	if err != nil {
		return c.Fetcher
	}

	if ContentDiffers(plainHTML, renderedHTML, c.Extractor) {
		return c.RenderFetcher
	}
	return c.Fetcher
}

// crawlList fetches a known list of URLs concurrently and saves them
// in their discovery order.
func (c *Crawler) crawlList(ctx context.Context, site *webster.Site, urls []string, progress ProgressFunc) (*Result, error) {
	if max := c.maxURLs(); len(urls) > max {
		urls = urls[:max]
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(urls)})
	}

	results := make([]*crawlResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())
	for i, u := range urls {
		g.Go(func() error {
			res := c.processURL(gctx, webster.DiscoveredLink{URL: u}, false)
			results[i] = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var result Result
	position := 0
	completed := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		c.saveResult(ctx, res, site, &result, &position, &completed, progress)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}
	return &result, nil
}

// crawlRecursive follows links from the root URL within scope, up to the
// site's depth. URLs are processed concurrently using walkFrontier.
func (c *Crawler) crawlRecursive(ctx context.Context, site *webster.Site, scope *Scope, filter *webster.URLFilter, progress ProgressFunc) (*Result, error) {
	var result Result
	var position int
	completed := 0

	processURL := func(ctx context.Context, link webster.DiscoveredLink) crawlResult {
		return c.processURL(ctx, link, true)
	}

	handleResult := func(res *crawlResult, frontier *Frontier) {
		for _, link := range res.discovered {
			if link.Depth > site.Depth {
				continue
			}
			if !scope.Allows(link.URL) {
				continue
			}
			if !filter.Match(link.URL) {
				continue
			}
			frontier.Push(link)
		}
		c.saveResult(ctx, res, site, &result, &position, &completed, progress)
	}

	if err := c.walkFrontier(ctx, site.RootURL, processURL, handleResult); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}
	return &result, nil
}

// processURL fetches one URL, optionally extracts links for the frontier,
// and converts the page content to Markdown.
func (c *Crawler) processURL(ctx context.Context, link webster.DiscoveredLink, followLinks bool) crawlResult {
	result := crawlResult{
		url:   link.URL,
		depth: link.Depth,
	}

	linkURL, err := url.Parse(link.URL)
	if err != nil {
		result.err = err
		return result
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, linkURL.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return c.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, link.URL, fetchFn, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	if followLinks && c.Links != nil {
		links, err := c.Links.ExtractLinks(html, link.URL)
		if err == nil {
			for i := range links {
				links[i].Depth = link.Depth + 1
			}
			result.discovered = links
		}
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		result.err = err
		return result
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		result.err = err
		return result
	}

	result.title = extracted.Title
	result.html = html
	result.markdown = markdown
	result.hash = computeHash(markdown)

	return result
}

// saveResult persists a successful crawl result as a document and updates
// counters; failures are reported through progress.
func (c *Crawler) saveResult(ctx context.Context, res *crawlResult, site *webster.Site, result *Result, position, completed *int, progress ProgressFunc) {
	if res.err != nil {
		result.Failed++
		*completed++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: *completed,
				URL:       res.url,
				Error:     res.err,
			})
		}
		return
	}

	doc := &webster.Document{
		SiteID:      site.ID,
		SourceURL:   res.url,
		Title:       res.title,
		Content:     res.markdown,
		ContentHash: res.hash,
		Depth:       res.depth,
		Position:    *position,
		RawHTML:     res.html,
	}
	*position++

	err := c.Documents.CreateDocument(ctx, doc)
	if err == nil && c.Export != nil {
		err = c.Export.CreateDocument(ctx, doc)
	}
	if err != nil {
		result.Failed++
		*completed++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: *completed,
				URL:       res.url,
				Error:     err,
			})
		}
		return
	}

	result.Saved++
	result.Bytes += len(res.markdown)
	if c.TokenCounter != nil {
		if tokens, err := c.TokenCounter.CountTokens(ctx, res.markdown); err == nil {
			result.Tokens += tokens
		}
	}

	*completed++
	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: *completed,
			URL:       res.url,
		})
	}
}

func (c *Crawler) concurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return 10
}

func (c *Crawler) maxURLs() int {
	if c.MaxURLs > 0 {
		return c.MaxURLs
	}
	return defaultMaxURLs
}
