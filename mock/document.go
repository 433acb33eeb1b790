package mock

import (
	"context"

	"github.com/hexbenjamin/webster"
)

var _ webster.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of webster.DocumentService.
type DocumentService struct {
	CreateDocumentFn        func(ctx context.Context, doc *webster.Document) error
	FindDocumentByIDFn      func(ctx context.Context, id string) (*webster.Document, error)
	FindDocumentsFn         func(ctx context.Context, filter webster.DocumentFilter) ([]*webster.Document, error)
	DeleteDocumentFn        func(ctx context.Context, id string) error
	DeleteDocumentsBySiteFn func(ctx context.Context, siteID string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *webster.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*webster.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter webster.DocumentFilter) ([]*webster.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) DeleteDocumentsBySite(ctx context.Context, siteID string) error {
	return s.DeleteDocumentsBySiteFn(ctx, siteID)
}
