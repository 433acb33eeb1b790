// Package gemini implements chat, embedding, and token counting backends
// using Google Gemini via google.golang.org/genai.
package gemini

import (
	"context"

	"github.com/hexbenjamin/webster"
	"google.golang.org/genai"
)

// Default models for the Gemini backend.
const (
	DefaultChatModel  = "gemini-2.5-flash"
	DefaultEmbedModel = "gemini-embedding-001"
)

// Ensure Chatter implements webster.Chatter at compile time.
var _ webster.Chatter = (*Chatter)(nil)

// Chatter implements webster.Chatter using Google Gemini.
type Chatter struct {
	client *genai.Client
	model  string
}

// NewChatter creates a new Chatter. An empty model uses DefaultChatModel.
func NewChatter(client *genai.Client, model string) *Chatter {
	if model == "" {
		model = DefaultChatModel
	}
	return &Chatter{client: client, model: model}
}

// Chat sends the message history to Gemini and returns the reply.
// System messages become the system instruction; user and assistant
// turns map to Gemini's "user" and "model" roles.
func (c *Chatter) Chat(ctx context.Context, messages []webster.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", webster.Errorf(webster.EINVALID, "no messages to send")
	}

	temp := float32(0)
	config := &genai.GenerateContentConfig{Temperature: &temp}

	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case webster.RoleSystem:
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: m.Content}},
			}
		case webster.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, "model"))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, "user"))
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", webster.Errorf(webster.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}
