package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hexbenjamin/webster"
)

// Compile-time interface verification.
var _ webster.ChunkService = (*ChunkService)(nil)

// ChunkService implements webster.ChunkService using SQLite. Embeddings
// are stored as little-endian float32 BLOBs; chunk metadata as JSON.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunk creates a new chunk.
func (s *ChunkService) CreateChunk(ctx context.Context, chunk *webster.Chunk) error {
	if err := chunk.Validate(); err != nil {
		return err
	}

	chunk.ID = uuid.New().String()

	metadata, err := json.Marshal(chunk.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode chunk metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, document_id, site_id, content, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`, chunk.ID, chunk.DocumentID, chunk.SiteID, chunk.Content,
		encodeEmbedding(chunk.Embedding), string(metadata))

	return err
}

// CreateChunks creates multiple chunks in a single transaction.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*webster.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, site_id, content, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		chunk.ID = uuid.New().String()

		metadata, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode chunk metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.SiteID,
			chunk.Content, encodeEmbedding(chunk.Embedding), string(metadata)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindChunkByID retrieves a chunk by ID.
func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*webster.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, site_id, content, embedding, metadata
		FROM chunks
		WHERE id = ?
	`, id)

	chunk, err := scanChunk(row.Scan)
	if err == sql.ErrNoRows {
		return nil, webster.Errorf(webster.ENOTFOUND, "chunk not found")
	}
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// FindChunks retrieves chunks matching the filter.
func (s *ChunkService) FindChunks(ctx context.Context, filter webster.ChunkFilter) ([]*webster.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, document_id, site_id, content, embedding, metadata FROM chunks WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DocumentID != nil {
		query.WriteString(" AND document_id = ?")
		args = append(args, *filter.DocumentID)
	}
	if filter.SiteID != nil {
		query.WriteString(" AND site_id = ?")
		args = append(args, *filter.SiteID)
	}

	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*webster.Chunk
	for rows.Next() {
		chunk, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// DeleteChunk permanently removes a chunk.
func (s *ChunkService) DeleteChunk(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return webster.Errorf(webster.ENOTFOUND, "chunk not found")
	}

	return nil
}

// DeleteChunksByDocument removes all chunks for a document.
func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	return err
}

// DeleteChunksBySite removes all chunks for a site.
func (s *ChunkService) DeleteChunksBySite(ctx context.Context, siteID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE site_id = ?", siteID)
	return err
}

// scanChunk reads one chunk row using the given scan function.
func scanChunk(scan func(...any) error) (*webster.Chunk, error) {
	var chunk webster.Chunk
	var embedding []byte
	var metadata string

	if err := scan(&chunk.ID, &chunk.DocumentID, &chunk.SiteID, &chunk.Content,
		&embedding, &metadata); err != nil {
		return nil, err
	}

	var err error
	chunk.Embedding, err = decodeEmbedding(embedding)
	if err != nil {
		return nil, err
	}

	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode chunk metadata: %w", err)
		}
	}

	return &chunk, nil
}
