package mock

import "github.com/hexbenjamin/webster"

var _ webster.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of webster.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]webster.DiscoveredLink, error)
	NameFn         func() string
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]webster.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}

func (s *LinkSelector) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}
