// Package storage is a thin client for the object-store REST API
// (Supabase-storage compatible). Two capabilities are consumed: listing
// entries under a path prefix, and resolving the public URL of an
// object key.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxListResponseSize caps a folder-listing response body.
const maxListResponseSize = 1 << 20

// Object is one entry of a folder listing.
type Object struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Client talks to one bucket of an object store.
type Client struct {
	baseURL string
	bucket  string
	anonKey string
	http    *http.Client
	limit   int
}

// NewClient returns a Client for the given store endpoint and bucket.
// The HTTP client is injected so callers control timeout and outbound
// policy. limit caps how many entries a single listing returns.
func NewClient(baseURL, bucket, anonKey string, httpClient *http.Client, limit int) *Client {
	if limit <= 0 {
		limit = 100
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		anonKey: anonKey,
		http:    httpClient,
		limit:   limit,
	}
}

// listRequest is the folder-listing request body.
type listRequest struct {
	Prefix string     `json:"prefix"`
	Limit  int        `json:"limit"`
	SortBy listSortBy `json:"sortBy"`
}

type listSortBy struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

// List returns the entries stored under the given path prefix, sorted
// by name. A non-2xx response or transport failure is returned as an
// error; an existing but empty folder yields an empty slice.
func (c *Client) List(ctx context.Context, prefix string) ([]Object, error) {
	body, err := json.Marshal(listRequest{
		Prefix: prefix,
		Limit:  c.limit,
		SortBy: listSortBy{Column: "name", Order: "asc"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal list request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/list/%s", c.baseURL, url.PathEscape(c.bucket))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.anonKey != "" {
		req.Header.Set("apikey", c.anonKey)
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("list %q: unexpected status %d", prefix, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxListResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read list response: %w", err)
	}

	var objects []Object
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	return objects, nil
}

// PublicURL resolves the public dereferenceable URL for an object key.
// Each path segment is escaped individually so keys with spaces or
// non-ASCII folder names stay valid.
func (c *Client) PublicURL(key string) string {
	segments := strings.Split(strings.Trim(key, "/"), "/")
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, url.PathEscape(c.bucket), strings.Join(escaped, "/"))
}
