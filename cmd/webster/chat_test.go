package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hexbenjamin/webster"
	"github.com/hexbenjamin/webster/chat"
	main "github.com/hexbenjamin/webster/cmd/webster"
	"github.com/hexbenjamin/webster/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("answers questions until exit", func(t *testing.T) {
		t.Parallel()

		site := &webster.Site{ID: "site-1", Name: "example.com", RootURL: "https://example.com"}

		conversations := &mock.ConversationService{
			CreateConversationFn: func(_ context.Context, conv *webster.Conversation) error {
				conv.ID = "conv-1"
				return nil
			},
			FindConversationByIDFn: func(_ context.Context, id string) (*webster.Conversation, error) {
				return &webster.Conversation{ID: id, SiteID: "site-1"}, nil
			},
			FindMessagesFn: func(_ context.Context, _ string) ([]*webster.Message, error) {
				return nil, nil
			},
			CreateMessageFn: func(_ context.Context, _ *webster.Message) error { return nil },
		}

		var questions []string
		engine := &chat.Engine{
			Search: &mock.SearchService{
				SearchFn: func(_ context.Context, query string, _ webster.SearchOptions) ([]webster.SearchResult, error) {
					questions = append(questions, query)
					return []webster.SearchResult{{
						Chunk: &webster.Chunk{Content: "content", Metadata: webster.ChunkMetadata{SourceURL: "https://example.com/a"}},
						Score: 0.9,
					}}, nil
				},
			},
			Chatter: &mock.Chatter{
				ChatFn: func(_ context.Context, _ []webster.ChatMessage) (string, error) {
					return "Here's your answer.", nil
				},
			},
			Conversations: conversations,
		}

		stdin := strings.NewReader("How does auth work?\nexit\n")
		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:           context.Background(),
			Stdin:         stdin,
			Stdout:        stdout,
			Stderr:        &bytes.Buffer{},
			Sites:         siteServiceWith(site),
			Conversations: conversations,
			Engine:        engine,
		}

		cmd := &main.ChatCmd{Site: "example.com"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"How does auth work?"}, questions)
		assert.Contains(t, stdout.String(), "Here's your answer.")
		assert.Contains(t, stdout.String(), "--resume conv-1")
	})

	t.Run("resume replays prior messages", func(t *testing.T) {
		t.Parallel()

		site := &webster.Site{ID: "site-1", Name: "example.com", RootURL: "https://example.com"}

		conversations := &mock.ConversationService{
			FindConversationByIDFn: func(_ context.Context, id string) (*webster.Conversation, error) {
				if id != "conv-9" {
					return nil, webster.Errorf(webster.ENOTFOUND, "conversation not found")
				}
				return &webster.Conversation{ID: "conv-9", SiteID: "site-1"}, nil
			},
			FindMessagesFn: func(_ context.Context, _ string) ([]*webster.Message, error) {
				return []*webster.Message{
					{Role: webster.RoleUser, Content: "earlier question"},
					{Role: webster.RoleAssistant, Content: "earlier answer"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:           context.Background(),
			Stdin:         strings.NewReader("exit\n"),
			Stdout:        stdout,
			Stderr:        &bytes.Buffer{},
			Sites:         siteServiceWith(site),
			Conversations: conversations,
			Engine:        &chat.Engine{Conversations: conversations},
		}

		cmd := &main.ChatCmd{Site: "example.com", Resume: "conv-9"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "earlier question")
		assert.Contains(t, stdout.String(), "earlier answer")
	})

	t.Run("rejects resuming a conversation from another site", func(t *testing.T) {
		t.Parallel()

		site := &webster.Site{ID: "site-1", Name: "example.com", RootURL: "https://example.com"}

		conversations := &mock.ConversationService{
			FindConversationByIDFn: func(_ context.Context, id string) (*webster.Conversation, error) {
				return &webster.Conversation{ID: id, SiteID: "other-site"}, nil
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:           context.Background(),
			Stdin:         strings.NewReader(""),
			Stdout:        &bytes.Buffer{},
			Stderr:        stderr,
			Sites:         siteServiceWith(site),
			Conversations: conversations,
			Engine:        &chat.Engine{Conversations: conversations},
		}

		cmd := &main.ChatCmd{Site: "example.com", Resume: "conv-9"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webster.EINVALID, webster.ErrorCode(err))
		assert.Contains(t, stderr.String(), "different site")
	})

	t.Run("keeps the loop going after an answer error", func(t *testing.T) {
		t.Parallel()

		site := &webster.Site{ID: "site-1", Name: "example.com", RootURL: "https://example.com"}

		conversations := &mock.ConversationService{
			CreateConversationFn: func(_ context.Context, conv *webster.Conversation) error {
				conv.ID = "conv-1"
				return nil
			},
			FindConversationByIDFn: func(_ context.Context, id string) (*webster.Conversation, error) {
				return &webster.Conversation{ID: id, SiteID: "site-1"}, nil
			},
			FindMessagesFn: func(_ context.Context, _ string) ([]*webster.Message, error) {
				return nil, nil
			},
			CreateMessageFn: func(_ context.Context, _ *webster.Message) error { return nil },
		}

		calls := 0
		engine := &chat.Engine{
			Search: &mock.SearchService{
				SearchFn: func(_ context.Context, _ string, _ webster.SearchOptions) ([]webster.SearchResult, error) {
					calls++
					if calls == 1 {
						return nil, webster.Errorf(webster.EUNAVAILABLE, "embedding service down")
					}
					return []webster.SearchResult{{
						Chunk: &webster.Chunk{Content: "content"},
						Score: 0.9,
					}}, nil
				},
			},
			Chatter: &mock.Chatter{
				ChatFn: func(_ context.Context, _ []webster.ChatMessage) (string, error) {
					return "Recovered answer.", nil
				},
			},
			Conversations: conversations,
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:           context.Background(),
			Stdin:         strings.NewReader("first question\nsecond question\nexit\n"),
			Stdout:        stdout,
			Stderr:        stderr,
			Sites:         siteServiceWith(site),
			Conversations: conversations,
			Engine:        engine,
		}

		cmd := &main.ChatCmd{Site: "example.com"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "embedding service down")
		assert.Contains(t, stdout.String(), "Recovered answer.")
	})
}
