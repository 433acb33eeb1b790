// Package openai implements chat and embedding backends against any
// OpenAI-compatible API, including local inference servers that expose
// the same endpoints.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Default models matching common OpenAI-compatible servers.
const (
	DefaultChatModel  = "gpt-4"
	DefaultEmbedModel = "text-embedding-ada-002"
)

// DefaultTimeout bounds a single API request. Chat completions over large
// contexts can take a while on local inference servers.
const DefaultTimeout = 120 * time.Second

// Client talks to an OpenAI-compatible API.
type Client struct {
	baseURL    string
	apiKey     string
	chatModel  string
	embedModel string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithChatModel overrides the chat completion model.
func WithChatModel(model string) ClientOption {
	return func(c *Client) { c.chatModel = model }
}

// WithEmbedModel overrides the embedding model.
func WithEmbedModel(model string) ClientOption {
	return func(c *Client) { c.embedModel = model }
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client for the given base URL (e.g.
// "https://api.openai.com/v1" or "http://localhost:1337/v1").
// The API key may be empty for local servers that don't check it.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		chatModel:  DefaultChatModel,
		embedModel: DefaultEmbedModel,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiError mirrors the error envelope OpenAI-compatible servers return.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// post sends a JSON request to the given path and decodes the response
// into out.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, path)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
