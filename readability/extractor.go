// Package readability extracts the main content from web pages using
// github.com/go-shiori/go-readability. It serves as a fallback for
// pages where trafilatura comes up empty.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/hexbenjamin/webster"
)

// Ensure Extractor implements webster.Extractor at compile time.
var _ webster.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*webster.ExtractResult, error) {
	if rawHTML == "" {
		return nil, webster.Errorf(webster.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &webster.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
