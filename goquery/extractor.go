package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hexbenjamin/webster"
)

// Ensure TagExtractor implements webster.Extractor.
var _ webster.Extractor = (*TagExtractor)(nil)

// TagExtractor extracts content from a specific HTML element, selected by
// tag name or any CSS selector (e.g., "article", "main", "#content").
// Useful when automatic content extraction picks up too much chrome and
// the user knows which element holds the page's substance.
type TagExtractor struct {
	selector string
}

// NewTagExtractor creates a TagExtractor for the given CSS selector.
func NewTagExtractor(selector string) *TagExtractor {
	return &TagExtractor{selector: selector}
}

// Extract returns the page title and the inner HTML of the first element
// matching the configured selector. If no element matches, the whole
// <body> is returned so a misconfigured selector degrades gracefully
// instead of producing empty documents.
func (e *TagExtractor) Extract(html string) (*webster.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webster.Errorf(webster.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	sel := doc.Find(e.selector).First()
	if sel.Length() == 0 {
		sel = doc.Find("body").First()
	}

	content, err := sel.Html()
	if err != nil {
		return nil, webster.Errorf(webster.EINTERNAL, "failed to render HTML: %v", err)
	}

	return &webster.ExtractResult{
		Title:       title,
		ContentHTML: content,
	}, nil
}
