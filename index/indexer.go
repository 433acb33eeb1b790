// Package index turns a site's scraped documents into embedded chunks
// ready for semantic search.
package index

import (
	"context"
	"sync"

	"github.com/hexbenjamin/webster"
	"golang.org/x/sync/errgroup"
)

// Defaults for the embedding pipeline.
const (
	// DefaultBatchSize is the number of chunks embedded per API call.
	DefaultBatchSize = 16
	// DefaultConcurrency is the number of embedding batches in flight.
	DefaultConcurrency = 4
)

// ProgressFunc reports indexing progress: chunks embedded so far out of
// the total.
type ProgressFunc func(embedded, total int)

// Result summarizes a completed indexing run.
type Result struct {
	Documents int
	Chunks    int
}

// Indexer splits a site's documents into chunks, embeds them in bounded
// parallel batches, and stores them. Re-indexing a site replaces its
// previous chunks.
type Indexer struct {
	Documents webster.DocumentService
	Chunks    webster.ChunkService
	Embedder  webster.Embedder
	Splitter  *webster.Splitter

	// BatchSize is the number of chunks per embedding request. Defaults to 16.
	BatchSize int

	// Concurrency is the number of embedding batches in flight. Defaults to 4.
	Concurrency int
}

// IndexSite re-indexes all documents of the given site.
func (ix *Indexer) IndexSite(ctx context.Context, siteID string, progress ProgressFunc) (*Result, error) {
	if siteID == "" {
		return nil, webster.Errorf(webster.EINVALID, "site ID required")
	}

	docs, err := ix.Documents.FindDocuments(ctx, webster.DocumentFilter{
		SiteID: &siteID,
		SortBy: webster.SortByPosition,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, webster.Errorf(webster.ENOTFOUND, "no documents for site; run scrape first")
	}

	splitter := ix.Splitter
	if splitter == nil {
		splitter = webster.NewSplitter()
	}

	var chunks []*webster.Chunk
	for _, doc := range docs {
		for _, sc := range splitter.Split(doc.Content) {
			chunks = append(chunks, &webster.Chunk{
				DocumentID: doc.ID,
				SiteID:     siteID,
				Content:    sc.Content,
				Metadata: webster.ChunkMetadata{
					Headers:   sc.Headers,
					StartLine: sc.StartLine,
					EndLine:   sc.EndLine,
					SourceURL: doc.SourceURL,
				},
			})
		}
	}

	if err := ix.embedAll(ctx, chunks, progress); err != nil {
		return nil, err
	}

	// Replace previous chunks only after embedding succeeded, so a failed
	// run leaves the old index intact.
	if err := ix.Chunks.DeleteChunksBySite(ctx, siteID); err != nil {
		return nil, err
	}
	if err := ix.Chunks.CreateChunks(ctx, chunks); err != nil {
		return nil, err
	}

	return &Result{Documents: len(docs), Chunks: len(chunks)}, nil
}

// embedAll fills in chunk embeddings, batching requests and running
// batches in parallel.
func (ix *Indexer) embedAll(ctx context.Context, chunks []*webster.Chunk, progress ProgressFunc) error {
	if len(chunks) == 0 {
		return nil
	}

	batchSize := ix.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var mu sync.Mutex
	embedded := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.concurrency())

	for start := 0; start < len(chunks); start += batchSize {
		batch := chunks[start:min(start+batchSize, len(chunks))]

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, c := range batch {
				texts[i] = c.Content
			}

			vecs, err := ix.Embedder.EmbedBatch(gctx, texts)
			if err != nil {
				return err
			}

			for i, c := range batch {
				c.Embedding = vecs[i]
			}

			mu.Lock()
			embedded += len(batch)
			done := embedded
			mu.Unlock()

			if progress != nil {
				progress(done, len(chunks))
			}
			return nil
		})
	}

	return g.Wait()
}

func (ix *Indexer) concurrency() int {
	if ix.Concurrency > 0 {
		return ix.Concurrency
	}
	return DefaultConcurrency
}
