package mock

import (
	"context"

	"github.com/hexbenjamin/webster"
)

var _ webster.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of webster.ChunkService.
type ChunkService struct {
	CreateChunkFn            func(ctx context.Context, chunk *webster.Chunk) error
	CreateChunksFn           func(ctx context.Context, chunks []*webster.Chunk) error
	FindChunkByIDFn          func(ctx context.Context, id string) (*webster.Chunk, error)
	FindChunksFn             func(ctx context.Context, filter webster.ChunkFilter) ([]*webster.Chunk, error)
	DeleteChunkFn            func(ctx context.Context, id string) error
	DeleteChunksByDocumentFn func(ctx context.Context, documentID string) error
	DeleteChunksBySiteFn     func(ctx context.Context, siteID string) error
}

func (s *ChunkService) CreateChunk(ctx context.Context, chunk *webster.Chunk) error {
	return s.CreateChunkFn(ctx, chunk)
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*webster.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*webster.Chunk, error) {
	return s.FindChunkByIDFn(ctx, id)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter webster.ChunkFilter) ([]*webster.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) DeleteChunk(ctx context.Context, id string) error {
	return s.DeleteChunkFn(ctx, id)
}

func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	return s.DeleteChunksByDocumentFn(ctx, documentID)
}

func (s *ChunkService) DeleteChunksBySite(ctx context.Context, siteID string) error {
	return s.DeleteChunksBySiteFn(ctx, siteID)
}
