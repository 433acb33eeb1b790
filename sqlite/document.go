package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/hexbenjamin/webster"
)

// Compile-time interface verification.
var _ webster.DocumentService = (*DocumentService)(nil)

// DocumentService implements webster.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// CreateDocument creates a new document. ID, fetch time, and content hash
// are assigned here.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *webster.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.FetchedAt = time.Now().UTC()
	if doc.ContentHash == "" {
		doc.ContentHash = hashContent(doc.Content)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, site_id, source_url, title, content, content_hash, depth, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SiteID, doc.SourceURL, doc.Title, doc.Content, doc.ContentHash,
		doc.Depth, doc.Position, doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*webster.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, site_id, source_url, title, content, content_hash, depth, position, fetched_at
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, webster.Errorf(webster.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter webster.DocumentFilter) ([]*webster.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, site_id, source_url, title, content, content_hash, depth, position, fetched_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SiteID != nil {
		query.WriteString(" AND site_id = ?")
		args = append(args, *filter.SiteID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	switch filter.SortBy {
	case webster.SortByPosition:
		query.WriteString(" ORDER BY position ASC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*webster.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document. Associated chunks are
// removed via foreign key cascade.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return webster.Errorf(webster.ENOTFOUND, "document not found")
	}

	return nil
}

// DeleteDocumentsBySite removes all documents for a site.
func (s *DocumentService) DeleteDocumentsBySite(ctx context.Context, siteID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE site_id = ?", siteID)
	return err
}

// scanDocument reads one document row using the given scan function.
func scanDocument(scan func(...any) error) (*webster.Document, error) {
	var doc webster.Document
	var fetchedAt string

	if err := scan(&doc.ID, &doc.SiteID, &doc.SourceURL, &doc.Title, &doc.Content,
		&doc.ContentHash, &doc.Depth, &doc.Position, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}
