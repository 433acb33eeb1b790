package webster

import (
	"context"
	"time"
)

// Document represents a scraped website page stored as Markdown.
type Document struct {
	ID          string    `json:"id"`
	SiteID      string    `json:"siteId"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Depth       int       `json:"depth"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`

	// RawHTML is the fetched page HTML before extraction. It is carried
	// through the crawl pipeline for local export but never persisted.
	RawHTML string `json:"-"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SiteID == "" {
		return Errorf(EINVALID, "document site ID required")
	}
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document and all associated chunks.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteDocumentsBySite removes all documents for a site.
	DeleteDocumentsBySite(ctx context.Context, siteID string) error
}

// SortOrder represents the sort order for document queries.
type SortOrder string

// SortOrder constants for DocumentFilter.
const (
	SortByFetchedAt SortOrder = "fetched_at"
	SortByPosition  SortOrder = "position"
)

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	SiteID    *string `json:"siteId"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
