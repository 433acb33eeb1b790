package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hexbenjamin/webster"
)

// Compile-time interface verification.
var _ webster.ConversationService = (*ConversationService)(nil)

// ConversationService implements webster.ConversationService using SQLite.
type ConversationService struct {
	db *DB
}

// NewConversationService creates a new ConversationService.
func NewConversationService(db *DB) *ConversationService {
	return &ConversationService{db: db}
}

// CreateConversation creates a new conversation.
func (s *ConversationService) CreateConversation(ctx context.Context, conv *webster.Conversation) error {
	if err := conv.Validate(); err != nil {
		return err
	}

	conv.ID = uuid.New().String()
	now := time.Now().UTC()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, site_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, conv.ID, conv.SiteID, conv.Title,
		conv.CreatedAt.Format(time.RFC3339), conv.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindConversationByID retrieves a conversation by ID.
func (s *ConversationService) FindConversationByID(ctx context.Context, id string) (*webster.Conversation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, site_id, title, created_at, updated_at
		FROM conversations
		WHERE id = ?
	`, id)

	conv, err := scanConversation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, webster.Errorf(webster.ENOTFOUND, "conversation not found")
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// FindConversations retrieves conversations matching the filter, most
// recently updated first.
func (s *ConversationService) FindConversations(ctx context.Context, filter webster.ConversationFilter) ([]*webster.Conversation, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, site_id, title, created_at, updated_at FROM conversations WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SiteID != nil {
		query.WriteString(" AND site_id = ?")
		args = append(args, *filter.SiteID)
	}

	query.WriteString(" ORDER BY updated_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*webster.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows.Scan)
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}

	return convs, rows.Err()
}

// DeleteConversation removes a conversation. Its messages are removed via
// foreign key cascade.
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return webster.Errorf(webster.ENOTFOUND, "conversation not found")
	}

	return nil
}

// CreateMessage appends a message to a conversation and bumps the
// conversation's updated_at so recent chats sort first.
func (s *ConversationService) CreateMessage(ctx context.Context, msg *webster.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if _, err := s.FindConversationByID(ctx, msg.ConversationID); err != nil {
		return err
	}

	msg.ID = uuid.New().String()
	msg.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, msg.ID, msg.ConversationID, string(msg.Role), msg.Content,
		msg.CreatedAt.Format(time.RFC3339Nano))

	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE conversations SET updated_at = ? WHERE id = ?
	`, msg.CreatedAt.Format(time.RFC3339), msg.ConversationID)

	return err
}

// FindMessages retrieves a conversation's messages in creation order.
func (s *ConversationService) FindMessages(ctx context.Context, conversationID string) ([]*webster.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*webster.Message
	for rows.Next() {
		var msg webster.Message
		var role, createdAt string

		if err := rows.Scan(&msg.ID, &msg.ConversationID, &role, &msg.Content, &createdAt); err != nil {
			return nil, err
		}

		msg.Role = webster.MessageRole(role)
		msg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}

		msgs = append(msgs, &msg)
	}

	return msgs, rows.Err()
}

// scanConversation reads one conversation row using the given scan function.
func scanConversation(scan func(...any) error) (*webster.Conversation, error) {
	var conv webster.Conversation
	var createdAt, updatedAt string

	if err := scan(&conv.ID, &conv.SiteID, &conv.Title, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	conv.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	conv.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}

	return &conv, nil
}
