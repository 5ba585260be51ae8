package domain

import "errors"

var (
	// ErrInvalidKey is returned when a product key is missing the required prefix
	ErrInvalidKey = errors.New("product key must start with " + KeyPrefix)

	// ErrProductNotFound is returned when the catalog has no page for a key
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrCatalogFailure is returned when a catalog request fails
	ErrCatalogFailure = errors.New("catalog request failed")

	// ErrCacheMiss is returned when a record is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrWorkbookUnreadable is returned when an uploaded document cannot be opened
	ErrWorkbookUnreadable = errors.New("workbook cannot be read")
)
