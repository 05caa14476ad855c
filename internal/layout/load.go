package layout

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Load reads a layout from a file path or an http(s) URL. client is used for
// URLs; nil means http.DefaultClient.
func Load(ctx context.Context, src string, client *http.Client) (*Collection, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return fetch(ctx, src, client)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", src, err)
	}
	return c, nil
}

func fetch(ctx context.Context, url string, client *http.Client) (*Collection, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/geo+json, application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("load layout: HTTP %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	c, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", url, err)
	}
	return c, nil
}
