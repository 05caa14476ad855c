package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// ErrNoEndpoint is returned by Fetch when no feed URL is configured.
var ErrNoEndpoint = errors.New("status: no feed endpoint configured")

// Client fetches the live status feed.
type Client struct {
	HTTP *http.Client
	URL  string
}

// NewClient returns a Client for url with the given request timeout.
// A zero timeout uses 15s.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		HTTP: &http.Client{Timeout: timeout},
		URL:  url,
	}
}

// Fetch downloads and decodes one feed payload.
func (c *Client) Fetch(ctx context.Context) ([]Record, error) {
	if c.URL == "" {
		return nil, ErrNoEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status feed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("status feed: decode: %w", err)
	}
	return records, nil
}
