// Package feed fetches the published inventory CSV and normalizes it
// into canonical vehicle records.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ClientFactory builds outbound HTTP clients that enforce the
// deployment's egress policy.
type ClientFactory interface {
	NewSafeClient(timeout time.Duration) *http.Client
	ValidateURL(rawURL string) error
}

// Fetcher retrieves the raw delimited feed text over HTTP.
type Fetcher struct {
	clients ClientFactory
	url     string
	timeout time.Duration
	maxSize int64
}

// NewFetcher returns a Fetcher for the given feed URL.
func NewFetcher(clients ClientFactory, url string, timeout time.Duration, maxSize int64) *Fetcher {
	return &Fetcher{clients: clients, url: url, timeout: timeout, maxSize: maxSize}
}

// FetchRaw performs one GET against the feed endpoint and returns the
// body as text. Any transport failure or non-2xx status is an error;
// the caller treats the whole feed as unavailable.
func (f *Fetcher) FetchRaw(ctx context.Context) (string, error) {
	if err := f.clients.ValidateURL(f.url); err != nil {
		return "", fmt.Errorf("feed URL rejected: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", "Autovidriera/1.0 Catalog")
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := f.clients.NewSafeClient(f.timeout).Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize))
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}

	return string(body), nil
}
