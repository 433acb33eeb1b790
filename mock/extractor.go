package mock

import "github.com/hexbenjamin/webster"

var _ webster.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webster.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*webster.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*webster.ExtractResult, error) {
	return e.ExtractFn(html)
}
