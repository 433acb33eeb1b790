package openai

import (
	"context"
	"fmt"

	"github.com/hexbenjamin/webster"
)

// Ensure Embedder implements webster.Embedder at compile time.
var _ webster.Embedder = (*Embedder)(nil)

// Embedder produces embedding vectors via the /embeddings endpoint.
type Embedder struct {
	client *Client
}

// NewEmbedder creates an Embedder using the given client.
func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns the embedding vector for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch returns embedding vectors for multiple texts, in input order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, webster.Errorf(webster.EINVALID, "no texts to embed")
	}

	var resp embeddingResponse
	err := e.client.post(ctx, "/embeddings", embeddingRequest{
		Model: e.client.embedModel,
		Input: texts,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// The API may return data out of order; the index field is authoritative.
	vecs := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vecs) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vecs[d.Index] = d.Embedding
	}
	return vecs, nil
}
