package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxTableBytes is the default response size limit. Larger responses are
// rejected, never truncated.
const maxTableBytes = 1 << 20

// HTTPSource downloads a CSV table, e.g. a published spreadsheet export.
type HTTPSource struct {
	URL    string
	Client *http.Client

	// MaxBytes overrides maxTableBytes when positive.
	MaxBytes int64
}

// NewHTTPSource creates a source with optional proxy support.
func NewHTTPSource(rawURL, proxyURL string) *HTTPSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPSource{
		URL: rawURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (h *HTTPSource) Name() string { return h.URL }

func (h *HTTPSource) Fetch(ctx context.Context) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch table: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch table: status %d, body: %s", resp.StatusCode, string(body))
	}

	limit := h.MaxBytes
	if limit <= 0 {
		limit = maxTableBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("fetch table: read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fetch table: response exceeds %d bytes", limit)
	}
	return parseCSV(bytes.NewReader(data))
}
