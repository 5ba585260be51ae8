package domain

import (
	"context"
	"time"
)

// ProductFetcher is the single-key retrieval capability injected into the
// reconciliation pipeline. Implementations own their retry/rate-limit policy;
// callers only see a record or an error.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, key ProductKey) (*ProductRecord, error)
}

// RecordCache defines the interface for caching fetched records between runs.
type RecordCache interface {
	Get(ctx context.Context, key ProductKey) (*ProductRecord, error)
	Set(ctx context.Context, key ProductKey, record *ProductRecord, ttl time.Duration) error
	Delete(ctx context.Context, key ProductKey) error
}
