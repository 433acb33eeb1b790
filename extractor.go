package webster

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, <title>, etc.).
	// The content HTML has boilerplate removed but preserves structure.
	Extract(html string) (*ExtractResult, error)
}

// ChainExtractor tries each extractor in order, returning the first result
// with non-empty content. If every extractor yields empty content, the
// last non-nil result is returned; if all fail, the last error is returned.
type ChainExtractor struct {
	Extractors []Extractor
}

// Extract implements Extractor.
func (c *ChainExtractor) Extract(html string) (*ExtractResult, error) {
	var lastResult *ExtractResult
	var lastErr error

	for _, e := range c.Extractors {
		result, err := e.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if result.ContentHTML != "" {
			return result, nil
		}
		lastResult = result
	}

	if lastResult != nil {
		return lastResult, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, Errorf(EINTERNAL, "no extractors configured")
}
