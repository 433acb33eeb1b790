package openai

import (
	"context"

	"github.com/hexbenjamin/webster"
)

// Ensure Chatter implements webster.Chatter at compile time.
var _ webster.Chatter = (*Chatter)(nil)

// Chatter produces chat completions via the /chat/completions endpoint.
// Temperature is pinned to 0 for deterministic answers over retrieved
// context.
type Chatter struct {
	client *Client
}

// NewChatter creates a Chatter using the given client.
func NewChatter(client *Client) *Chatter {
	return &Chatter{client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat sends the message history to the model and returns the assistant's reply.
func (c *Chatter) Chat(ctx context.Context, messages []webster.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", webster.Errorf(webster.EINVALID, "no messages to send")
	}

	req := chatRequest{
		Model:       c.client.chatModel,
		Messages:    make([]chatMessage, len(messages)),
		Temperature: 0,
	}
	for i, m := range messages {
		req.Messages[i] = chatMessage{Role: string(m.Role), Content: m.Content}
	}

	var resp chatResponse
	if err := c.client.post(ctx, "/chat/completions", req, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", webster.Errorf(webster.EUNAVAILABLE, "model returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
