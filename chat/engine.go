// Package chat answers questions about a scraped site by retrieving
// relevant chunks and prompting a chat model with them.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/hexbenjamin/webster"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// DefaultSystemPrompt instructs the model to stay grounded in the
// retrieved content and to cite sources.
const DefaultSystemPrompt = "You are a helpful assistant answering questions about a website. " +
	"Answer using only the website content provided in the conversation. " +
	"Cite the source URLs of the content you used. " +
	"If the answer is not in the content, say that you don't know."

// Answer is the engine's reply to a question, with the source URLs of
// the chunks that backed it.
type Answer struct {
	Text           string   `json:"text"`
	Sources        []string `json:"sources,omitempty"`
	ConversationID string   `json:"conversationId,omitempty"`
}

// Engine answers questions about a site. Each question is embedded,
// matched against the site's indexed chunks, and sent to the chat model
// together with the retrieved content. Multi-turn sessions persist their
// history through a ConversationService.
type Engine struct {
	Search        webster.SearchService
	Chatter       webster.Chatter
	Conversations webster.ConversationService

	// TopK is the number of chunks retrieved per question. Defaults to 5.
	TopK int

	// MinScore drops retrieved chunks below this similarity score.
	MinScore float32

	// SystemPrompt overrides DefaultSystemPrompt when set.
	SystemPrompt string
}

// Ask answers a single question about a site, without conversation history.
func (e *Engine) Ask(ctx context.Context, siteID, question string) (*Answer, error) {
	if siteID == "" {
		return nil, webster.Errorf(webster.EINVALID, "site ID required")
	}
	if strings.TrimSpace(question) == "" {
		return nil, webster.Errorf(webster.EINVALID, "question required")
	}

	results, err := e.retrieve(ctx, siteID, question)
	if err != nil {
		return nil, err
	}

	messages := []webster.ChatMessage{
		{Role: webster.RoleSystem, Content: e.systemPrompt()},
		{Role: webster.RoleUser, Content: questionWithContext(results, question)},
	}

	reply, err := e.Chatter.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}

	return &Answer{Text: reply, Sources: sources(results)}, nil
}

// StartConversation creates a new persisted chat session for a site.
func (e *Engine) StartConversation(ctx context.Context, siteID, title string) (*webster.Conversation, error) {
	conv := &webster.Conversation{SiteID: siteID, Title: title}
	if err := e.Conversations.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// Send answers a question within a conversation, carrying the prior
// exchange as chat history. The question and reply are persisted only
// after the model responds, so a failed turn leaves no half-recorded
// exchange.
func (e *Engine) Send(ctx context.Context, conversationID, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, webster.Errorf(webster.EINVALID, "question required")
	}

	conv, err := e.Conversations.FindConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	results, err := e.retrieve(ctx, conv.SiteID, question)
	if err != nil {
		return nil, err
	}

	history, err := e.Conversations.FindMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages := make([]webster.ChatMessage, 0, len(history)+2)
	messages = append(messages, webster.ChatMessage{Role: webster.RoleSystem, Content: e.systemPrompt()})
	for _, m := range history {
		messages = append(messages, webster.ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, webster.ChatMessage{Role: webster.RoleUser, Content: questionWithContext(results, question)})

	reply, err := e.Chatter.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}

	// History stores the plain question, not the context-stuffed prompt,
	// so follow-up turns don't replay stale retrieved content.
	if err := e.Conversations.CreateMessage(ctx, &webster.Message{
		ConversationID: conversationID,
		Role:           webster.RoleUser,
		Content:        question,
	}); err != nil {
		return nil, err
	}
	if err := e.Conversations.CreateMessage(ctx, &webster.Message{
		ConversationID: conversationID,
		Role:           webster.RoleAssistant,
		Content:        reply,
	}); err != nil {
		return nil, err
	}

	return &Answer{Text: reply, Sources: sources(results), ConversationID: conversationID}, nil
}

// retrieve runs semantic search for the question over the site's chunks.
func (e *Engine) retrieve(ctx context.Context, siteID, question string) ([]webster.SearchResult, error) {
	results, err := e.Search.Search(ctx, question, webster.SearchOptions{
		SiteIDs:  []string{siteID},
		Limit:    e.topK(),
		MinScore: e.MinScore,
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, webster.Errorf(webster.ENOTFOUND, "no indexed content for site %q; run embed first", siteID)
	}
	return results, nil
}

func (e *Engine) topK() int {
	if e.TopK > 0 {
		return e.TopK
	}
	return DefaultTopK
}

func (e *Engine) systemPrompt() string {
	if e.SystemPrompt != "" {
		return e.SystemPrompt
	}
	return DefaultSystemPrompt
}

// questionWithContext builds the user turn: retrieved content first,
// then the question.
func questionWithContext(results []webster.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("Website content:\n\n")
	sb.WriteString(webster.FormatSearchResults(results))
	fmt.Fprintf(&sb, "\n\nQuestion: %s", question)
	return sb.String()
}

// sources returns the unique source URLs of the results in rank order.
func sources(results []webster.SearchResult) []string {
	seen := make(map[string]bool, len(results))
	var urls []string
	for _, res := range results {
		url := res.Chunk.Metadata.SourceURL
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		urls = append(urls, url)
	}
	return urls
}
