package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/omidrezab/parsfx/pkg/models"
)

// Market fetches free-market currency quotes from the JSON market-data API.
type Market struct {
	url    string
	apiKey string
	codes  []models.Code
	client *http.Client
}

// NewMarket creates a market source for the given endpoint and tracked codes.
func NewMarket(rawURL, apiKey string, codes []models.Code, client *http.Client) *Market {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &Market{
		url:    rawURL,
		apiKey: apiKey,
		codes:  codes,
		client: client,
	}
}

// Name returns the data source name.
func (m *Market) Name() string { return "free market API" }

// marketResponse mirrors the API envelope. Only the currency section is used.
type marketResponse struct {
	Currency []marketEntry `json:"currency"`
}

// marketEntry is one currency listing. The price is decoded permissively:
// the API is expected to send numbers, but anything else must surface as a
// missing value rather than a zero or a decode failure.
type marketEntry struct {
	Symbol string `json:"symbol"`
	Price  any    `json:"price"`
	NameEN string `json:"name_en"`
}

// FetchQuotes fetches the quote listing and returns entries for tracked codes
// only. Network failure, a non-success status, or a body that is not valid
// JSON are all errors; a listing that simply omits a tracked code is not.
func (m *Market) FetchQuotes(ctx context.Context) (map[models.Code]models.Quote, error) {
	body, _, err := doGet(ctx, m.client, m.requestURL(), map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch market quotes: %w", err)
	}
	defer body.Close()

	var resp marketResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode market response: %w", err)
	}

	tracked := make(map[models.Code]bool, len(m.codes))
	for _, c := range m.codes {
		tracked[c] = true
	}

	quotes := make(map[models.Code]models.Quote)
	for _, entry := range resp.Currency {
		code := models.Code(strings.ToUpper(strings.TrimSpace(entry.Symbol)))
		if !tracked[code] {
			continue
		}
		q := models.Quote{Symbol: code, Name: entry.NameEN}
		// JSON numbers decode to float64; any other shape means no price.
		if p, ok := entry.Price.(float64); ok {
			q.Price = p
			q.HasPrice = true
		}
		quotes[code] = q
	}

	return quotes, nil
}

// requestURL appends the API key to the configured endpoint.
func (m *Market) requestURL() string {
	if m.apiKey == "" {
		return m.url
	}
	sep := "?"
	if strings.Contains(m.url, "?") {
		sep = "&"
	}
	return m.url + sep + "key=" + url.QueryEscape(m.apiKey)
}
