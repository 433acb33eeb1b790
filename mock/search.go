package mock

import (
	"context"

	"github.com/hexbenjamin/webster"
)

var _ webster.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of webster.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts webster.SearchOptions) ([]webster.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts webster.SearchOptions) ([]webster.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
