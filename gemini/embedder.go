package gemini

import (
	"context"
	"fmt"

	"github.com/hexbenjamin/webster"
	"google.golang.org/genai"
)

// Ensure Embedder implements webster.Embedder at compile time.
var _ webster.Embedder = (*Embedder)(nil)

// Embedder produces embedding vectors using Gemini embedding models.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model uses DefaultEmbedModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbedModel
	}
	return &Embedder{client: client, model: model}
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

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, "user")
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, err
	}
	return collectEmbeddings(result, len(texts))
}

// collectEmbeddings validates an embedding response and pulls out the
// vectors, expecting one embedding per input text.
func collectEmbeddings(result *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if result == nil {
		return nil, fmt.Errorf("expected %d embeddings, got none", want)
	}
	if len(result.Embeddings) != want {
		return nil, fmt.Errorf("expected %d embeddings, got %d", want, len(result.Embeddings))
	}

	vecs := make([][]float32, want)
	for i, emb := range result.Embeddings {
		if emb == nil {
			return nil, fmt.Errorf("missing embedding at index %d", i)
		}
		vecs[i] = emb.Values
	}
	return vecs, nil
}
