package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// RateTable fetches the central-bank HTML page carrying the cash and remit
// rate tables. It returns the raw document; extraction is a separate concern.
type RateTable struct {
	url    string
	client *http.Client
}

// NewRateTable creates a rate table source for the given page URL.
func NewRateTable(rawURL string, client *http.Client) *RateTable {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &RateTable{url: rawURL, client: client}
}

// Name returns the data source name.
func (r *RateTable) Name() string { return "central bank rate table" }

// Fetch downloads the rate table page and returns its raw HTML. Network
// failure and non-success statuses are errors; page content is not inspected
// here — a page without recognizable tables is the extractor's concern, and
// degrades to missing values rather than failing the fetch.
func (r *RateTable) Fetch(ctx context.Context) (string, error) {
	body, _, err := doGet(ctx, r.client, r.url, map[string]string{
		"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		return "", fmt.Errorf("fetch rate table: %w", err)
	}
	defer body.Close()

	html, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read rate table body: %w", err)
	}
	return string(html), nil
}
