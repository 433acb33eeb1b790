package crawl

import "github.com/hexbenjamin/webster"

// ContentDiffers compares content extracted from plain-HTTP HTML vs
// browser-rendered HTML. Returns true if the rendered content is
// significantly longer (>50%), suggesting JavaScript rendering adds
// meaningful content. Also returns true on extraction errors.
func ContentDiffers(httpHTML, renderedHTML string, extractor webster.Extractor) bool {
	httpResult, err := extractor.Extract(httpHTML)
	if err != nil {
		return true
	}

	renderedResult, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true
	}

	httpLen := len(httpResult.ContentHTML)
	renderedLen := len(renderedResult.ContentHTML)

	if httpLen == 0 && renderedLen > 0 {
		return true
	}

	threshold := float64(httpLen) * 1.5
	return float64(renderedLen) > threshold
}
