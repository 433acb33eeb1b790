package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/hexbenjamin/webster"
)

// walkProcessor processes a URL and returns a crawlResult.
type walkProcessor func(ctx context.Context, link webster.DiscoveredLink) crawlResult

// walkResultHandler handles a completed crawlResult.
// It should add discovered links to the frontier (after filtering) and
// handle the result. It is called sequentially from the coordinator.
type walkResultHandler func(result *crawlResult, frontier *Frontier)

// walkFrontier manages concurrent URL processing starting from rootURL:
// frontier management with Bloom filter deduplication, a concurrent
// worker pool, and work dispatch with result collection.
func (c *Crawler) walkFrontier(ctx context.Context, rootURL string, processURL walkProcessor, handleResult walkResultHandler) error {
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(webster.DiscoveredLink{
		URL:      rootURL,
		Priority: webster.PriorityNavigation,
		Depth:    0,
	})

	concurrency := c.concurrency()
	maxURLs := c.maxURLs()

	workCh := make(chan webster.DiscoveredLink, concurrency)
	resultCh := make(chan crawlResult)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range workCh {
				result := processURL(ctx, link)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close result channel when all workers are done.
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	processedCount := 0 // URLs dispatched to workers
	pending := 0        // URLs currently being processed
	var nextLink *webster.DiscoveredLink

	if link, ok := frontier.Pop(); ok {
		nextLink = &link
	}

coordinatorLoop:
	for {
		if nextLink == nil && pending == 0 {
			break coordinatorLoop
		}

		if ctx.Err() != nil {
			break coordinatorLoop
		}

		if nextLink != nil && processedCount < maxURLs {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *nextLink:
				processedCount++
				pending++
				nextLink = nil
			case res := <-resultCh:
				pending--
				handleResult(&res, frontier)
			}
		} else {
			// No more work to dispatch, just receive results.
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handleResult(&res, frontier)
			}
		}

		if nextLink == nil && processedCount < maxURLs {
			if link, ok := frontier.Pop(); ok {
				nextLink = &link
			}
		}
	}

	// Signal workers to stop and drain remaining results.
	close(workCh)

	drainTimeout := time.After(5 * time.Second)
drainLoop:
	for {
		select {
		case res, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			handleResult(&res, frontier)
		case <-drainTimeout:
			break drainLoop
		}
	}

	return nil
}
