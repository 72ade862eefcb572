// Package pricing owns the load of the external pricing table.
// The table is fetched once per session and exposed as an immutable
// snapshot; a failed load is terminal for the session.
package pricing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"construction-cost/internal/errors"
)

// Source supplies the raw pricing payload
type Source interface {
	// Fetch retrieves the pricing payload bytes
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPSource fetches the pricing file over HTTP.
// The GET bypasses intermediary caches so a freshly published table is
// picked up on the next session.
type HTTPSource struct {
	// URL is the fixed location of the pricing file
	URL string

	// Client is the HTTP client to use (http.DefaultClient if nil)
	Client *http.Client

	// MaxBodySize limits the response body size
	MaxBodySize int64
}

// NewHTTPSource creates an HTTP source with a bounded client
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:         url,
		Client:      &http.Client{Timeout: timeout},
		MaxBodySize: 1 << 20, // 1MB
	}
}

// Fetch performs the cache-bypassing GET
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	url := fmt.Sprintf("%s?t=%d", s.URL, time.Now().UnixNano())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Network("invalid pricing URL", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Network("pricing fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf(errors.TypeNetwork, "pricing fetch returned status %d", resp.StatusCode)
	}

	maxSize := s.MaxBodySize
	if maxSize <= 0 {
		maxSize = 1 << 20
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize))
	if err != nil {
		return nil, errors.Network("reading pricing response", err)
	}

	return data, nil
}

// FileSource reads the pricing file from local disk
type FileSource struct {
	// Path is the location of the pricing file
	Path string
}

// Fetch reads the file
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeNotFound, "reading pricing file", err)
	}
	return data, nil
}
