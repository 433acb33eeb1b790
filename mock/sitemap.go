package mock

import (
	"context"

	"github.com/hexbenjamin/webster"
)

var _ webster.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of webster.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *webster.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *webster.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
