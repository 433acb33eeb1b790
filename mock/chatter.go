package mock

import (
	"context"

	"github.com/hexbenjamin/webster"
)

var _ webster.Chatter = (*Chatter)(nil)

// Chatter is a mock implementation of webster.Chatter.
type Chatter struct {
	ChatFn func(ctx context.Context, messages []webster.ChatMessage) (string, error)
}

func (c *Chatter) Chat(ctx context.Context, messages []webster.ChatMessage) (string, error) {
	return c.ChatFn(ctx, messages)
}
