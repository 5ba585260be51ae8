package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/partsight/backend/internal/domain"
)

// Client retrieves product pages from the web parts catalog and maps them to
// domain records. It implements domain.ProductFetcher.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a catalog client. requestsPerSecond bounds how hard the
// client hits the catalog; the burst allows short bursts during batch runs.
func NewClient(baseURL string, requestsPerSecond float64) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 5),
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// productURL builds the canonical catalog page URL for a key
func (c *Client) productURL(key domain.ProductKey) string {
	return fmt.Sprintf("%s/en/product/%s", c.baseURL, key)
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Partsight/1.0")
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFailure, err)
	}

	return resp, nil
}

// FetchProduct retrieves and parses the catalog page for one key. Transient
// failures are retried up to 3 times with linear backoff; a missing page is
// domain.ErrProductNotFound and not retried.
func (c *Client) FetchProduct(ctx context.Context, key domain.ProductKey) (*domain.ProductRecord, error) {
	reqURL := c.productURL(key)
	if c.debug {
		log.Printf("[CATALOG] FetchProduct %s -> %s", key, reqURL)
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[CATALOG] request error (attempt %d) for %s: %v", attempt, key, err)
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil, domain.ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			log.Printf("[CATALOG] API error (attempt %d) for %s - Status: %d, Body: %s",
				attempt, key, resp.StatusCode, string(body))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogFailure, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		record, err := parseProductPage(key, reqURL, resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse product page: %w", err)
		}

		if c.debug {
			log.Printf("[CATALOG] fetched %s: %q", key, record.Title)
		}
		return record, nil
	}

	log.Printf("[CATALOG] all retries failed for %s", key)
	return nil, lastErr
}
