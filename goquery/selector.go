// Package goquery provides HTML parsing implementations built on
// github.com/PuerkitoBio/goquery: link extraction for the crawler and
// tag-scoped content extraction.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hexbenjamin/webster"
)

// Ensure AnchorSelector implements webster.LinkSelector.
var _ webster.LinkSelector = (*AnchorSelector)(nil)

// AnchorSelector extracts links from any website using universal CSS
// selectors. Semantic areas (TOC, nav, content, footer) get graded
// priorities; every remaining anchor is still collected at fallback
// priority so sites with non-semantic markup are crawlable too.
type AnchorSelector struct{}

// NewAnchorSelector creates a new AnchorSelector.
func NewAnchorSelector() *AnchorSelector {
	return &AnchorSelector{}
}

// Name returns the selector's identifier.
func (s *AnchorSelector) Name() string {
	return "anchor"
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// External links (different host than baseURL) are filtered out.
//
// Priority order (highest to lowest):
//   - TOC: .toc, .sidebar, .table-of-contents, aside
//   - Navigation: nav, [role="navigation"], .nav, .menu, .navbar
//   - Content: main, article, .content
//   - Footer: footer, .footer
//   - Fallback: any other anchor on the page
func (s *AnchorSelector) ExtractLinks(html string, baseURL string) ([]webster.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, webster.Errorf(webster.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webster.Errorf(webster.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates
	seen := make(map[string]int)
	var links []webster.DiscoveredLink

	extract := func(selector string, priority webster.LinkPriority, source string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			// Skip non-HTTP links (javascript:, mailto:, etc.)
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			// Filter external links (exact host match, subdomains are filtered)
			if !isSameHost(base, resolved) {
				return
			}

			link := webster.DiscoveredLink{
				URL:      resolved,
				Priority: priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   source,
			}

			if idx, ok := seen[resolved]; ok {
				// Update if this has higher priority
				if priority > links[idx].Priority {
					links[idx] = link
				}
			} else {
				seen[resolved] = len(links)
				links = append(links, link)
			}
		})
	}

	extract(".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]", webster.PriorityTOC, "toc")
	extract("nav a[href], [role=\"navigation\"] a[href], .nav a[href], .menu a[href], .navbar a[href]", webster.PriorityNavigation, "nav")
	extract("main a[href], article a[href], .content a[href]", webster.PriorityContent, "content")
	extract("footer a[href], .footer a[href]", webster.PriorityFooter, "footer")
	extract("a[href]", webster.PriorityFallback, "fallback")

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	// Filter self-referential links (e.g., anchor-only links pointing to same page)
	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
