package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/partsight/backend/internal/domain"
)

// FetchAll retrieves one record per unique key with at most concurrency
// fetches in flight. A failed fetch is captured as that key's outcome and
// never affects the other keys. The call blocks until every key has an
// outcome; the returned map has exactly one entry per unique input key.
//
// Retry, backoff and timeout policy belong to the injected fetcher; this
// function only bounds parallelism and isolates failures.
func FetchAll(
	ctx context.Context,
	keys []domain.ProductKey,
	fetcher domain.ProductFetcher,
	concurrency int,
) map[domain.ProductKey]domain.RetrievalOutcome {
	if concurrency < 1 {
		concurrency = 1
	}

	unique := dedupeKeys(keys)
	outcomes := make(map[domain.ProductKey]domain.RetrievalOutcome, len(unique))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	slots := make(chan struct{}, concurrency)

	for _, key := range unique {
		wg.Add(1)
		go func(key domain.ProductKey) {
			defer wg.Done()

			slots <- struct{}{}
			defer func() { <-slots }()

			record, err := fetcher.FetchProduct(ctx, key)

			// Each key is written exactly once, so the mutex only guards the
			// map structure itself
			mu.Lock()
			if err != nil {
				outcomes[key] = domain.RetrievalOutcome{Err: err}
			} else {
				outcomes[key] = domain.RetrievalOutcome{Record: record}
			}
			mu.Unlock()
		}(key)
	}
	wg.Wait()

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	log.Printf("[FETCH] %d unique keys fetched, %d failed (concurrency %d)", len(unique), failed, concurrency)

	return outcomes
}

// dedupeKeys drops duplicates while keeping first-seen order
func dedupeKeys(keys []domain.ProductKey) []domain.ProductKey {
	seen := make(map[domain.ProductKey]struct{}, len(keys))
	unique := make([]domain.ProductKey, 0, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	return unique
}
