package sqlite

import (
	"context"
	"sort"

	"github.com/hexbenjamin/webster"
)

// DefaultSearchLimit is the number of results returned when the caller
// doesn't specify one.
const DefaultSearchLimit = 5

// Compile-time interface verification.
var _ webster.SearchService = (*SearchService)(nil)

// SearchService implements semantic search by scanning stored chunk
// embeddings and ranking them with cosine similarity. A linear scan is
// fine at this scale: a scraped site yields at most a few thousand chunks.
type SearchService struct {
	db       *DB
	chunks   *ChunkService
	embedder webster.Embedder
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB, embedder webster.Embedder) *SearchService {
	return &SearchService{
		db:       db,
		chunks:   NewChunkService(db),
		embedder: embedder,
	}
}

// Search embeds the query and returns the most similar chunks.
func (s *SearchService) Search(ctx context.Context, query string, opts webster.SearchOptions) ([]webster.SearchResult, error) {
	if query == "" {
		return nil, webster.Errorf(webster.EINVALID, "search query required")
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	var results []webster.SearchResult
	for _, siteID := range s.siteIDs(ctx, opts) {
		chunks, err := s.chunks.FindChunks(ctx, webster.ChunkFilter{SiteID: &siteID})
		if err != nil {
			return nil, err
		}

		for _, chunk := range chunks {
			if len(chunk.Embedding) == 0 {
				continue
			}
			score := webster.CosineSimilarity(queryVec, chunk.Embedding)
			if score < opts.MinScore {
				continue
			}
			results = append(results, webster.SearchResult{Chunk: chunk, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// siteIDs expands the search scope: explicit site IDs from the options,
// or every site in the database when none are given.
func (s *SearchService) siteIDs(ctx context.Context, opts webster.SearchOptions) []string {
	if len(opts.SiteIDs) > 0 {
		return opts.SiteIDs
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id FROM sites")
	if err != nil {
		return nil
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return ids
		}
		ids = append(ids, id)
	}
	return ids
}
