package webster

import (
	"context"
	"time"
)

// MessageRole identifies the author of a chat message.
type MessageRole string

// Roles for chat messages.
const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message represents a single turn in a conversation.
type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversationId"`
	Role           MessageRole `json:"role"`
	Content        string      `json:"content"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Validate returns an error if the message contains invalid fields.
func (m *Message) Validate() error {
	if m.ConversationID == "" {
		return Errorf(EINVALID, "message conversation ID required")
	}
	switch m.Role {
	case RoleSystem, RoleUser, RoleAssistant:
	default:
		return Errorf(EINVALID, "message role %q not recognized", m.Role)
	}
	if m.Content == "" {
		return Errorf(EINVALID, "message content required")
	}
	return nil
}

// Conversation represents a persisted chat session scoped to a site.
type Conversation struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"siteId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the conversation contains invalid fields.
func (c *Conversation) Validate() error {
	if c.SiteID == "" {
		return Errorf(EINVALID, "conversation site ID required")
	}
	return nil
}

// ConversationService represents a service for managing conversations
// and their messages.
type ConversationService interface {
	// CreateConversation creates a new conversation.
	CreateConversation(ctx context.Context, conv *Conversation) error

	// FindConversationByID retrieves a conversation by ID.
	// Returns ENOTFOUND if conversation does not exist.
	FindConversationByID(ctx context.Context, id string) (*Conversation, error)

	// FindConversations retrieves conversations matching the filter.
	FindConversations(ctx context.Context, filter ConversationFilter) ([]*Conversation, error)

	// DeleteConversation removes a conversation and its messages.
	// Returns ENOTFOUND if conversation does not exist.
	DeleteConversation(ctx context.Context, id string) error

	// CreateMessage appends a message to a conversation.
	CreateMessage(ctx context.Context, msg *Message) error

	// FindMessages retrieves a conversation's messages in creation order.
	FindMessages(ctx context.Context, conversationID string) ([]*Message, error)
}

// ConversationFilter represents a filter for FindConversations.
type ConversationFilter struct {
	ID     *string `json:"id"`
	SiteID *string `json:"siteId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ChatMessage is a role/content pair sent to a chat model.
// It is decoupled from Message so backends don't see storage concerns.
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// Chatter produces chat completions from a language model backend.
type Chatter interface {
	// Chat sends the message history to the model and returns the
	// assistant's reply.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
}
