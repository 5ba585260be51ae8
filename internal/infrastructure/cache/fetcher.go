package cache

import (
	"context"
	"time"

	"github.com/partsight/backend/internal/domain"
)

// CachedFetcher wraps a ProductFetcher with a record cache so repeated
// reconciliation runs within the TTL do not re-hit the catalog. Fetch
// failures are never cached.
type CachedFetcher struct {
	fetcher domain.ProductFetcher
	cache   domain.RecordCache
	ttl     time.Duration
}

// NewCachedFetcher creates a caching wrapper around fetcher
func NewCachedFetcher(fetcher domain.ProductFetcher, cache domain.RecordCache, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &CachedFetcher{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
	}
}

// FetchProduct returns the cached record for key or delegates to the wrapped
// fetcher and caches the result.
func (f *CachedFetcher) FetchProduct(ctx context.Context, key domain.ProductKey) (*domain.ProductRecord, error) {
	if record, err := f.cache.Get(ctx, key); err == nil {
		return record, nil
	}

	record, err := f.fetcher.FetchProduct(ctx, key)
	if err != nil {
		return nil, err
	}

	// A failed cache write only costs a future re-fetch
	_ = f.cache.Set(ctx, key, record, f.ttl)

	return record, nil
}
