package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/hexbenjamin/webster"
)

// Ensure LoggingEmbedder implements webster.Embedder.
var _ webster.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging for batch calls.
type LoggingEmbedder struct {
	next   webster.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next webster.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.next.Embed(ctx, text)
}

// EmbedBatch logs the batch size and delegates to the wrapped embedder.
func (e *LoggingEmbedder) EmbedBatch(ctx context.Context, texts []string) (vecs [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed batch",
			"texts", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.EmbedBatch(ctx, texts)
}
