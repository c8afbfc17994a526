package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omidrezab/parsfx/pkg/models"
)

func marketFor(t *testing.T, handler http.HandlerFunc) *Market {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMarket(srv.URL, "test-key", models.DefaultCodes(), srv.Client())
}

func TestFetchQuotesHappyPath(t *testing.T) {
	m := marketFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"currency":[
			{"symbol":"usd","price":1050123.4,"name_en":"US Dollar"},
			{"symbol":"EUR","price":1140000,"name_en":"Euro"},
			{"symbol":"GBP","price":1300000,"name_en":"British Pound"}
		]}`))
	})

	quotes, err := m.FetchQuotes(context.Background())
	if err != nil {
		t.Fatalf("FetchQuotes: %v", err)
	}

	usd, ok := quotes[models.USD]
	if !ok {
		t.Fatal("USD missing (lowercase symbol should normalize)")
	}
	if !usd.HasPrice || usd.Price != 1050123.4 {
		t.Errorf("USD quote = %+v", usd)
	}
	if usd.Name != "US Dollar" {
		t.Errorf("USD name = %q", usd.Name)
	}
	if _, ok := quotes["GBP"]; ok {
		t.Error("untracked GBP should be dropped")
	}
}

func TestFetchQuotesNonNumericPrice(t *testing.T) {
	m := marketFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"currency":[{"symbol":"USD","price":"-","name_en":"US Dollar"}]}`))
	})

	quotes, err := m.FetchQuotes(context.Background())
	if err != nil {
		t.Fatalf("FetchQuotes: %v", err)
	}
	usd := quotes[models.USD]
	if usd.HasPrice {
		t.Errorf("string price must not become numeric: %+v", usd)
	}
	if usd.Price != 0 {
		t.Errorf("price should stay zero-valued, got %v", usd.Price)
	}
}

func TestFetchQuotesHTTPError(t *testing.T) {
	m := marketFor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := m.FetchQuotes(context.Background())
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestFetchQuotesInvalidJSON(t *testing.T) {
	m := marketFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := m.FetchQuotes(context.Background())
	if err == nil {
		t.Fatal("expected error for invalid JSON body")
	}
}

func TestFetchQuotesEmptyListing(t *testing.T) {
	m := marketFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"currency":[]}`))
	})

	quotes, err := m.FetchQuotes(context.Background())
	if err != nil {
		t.Fatalf("empty listing is degraded, not fatal: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("expected no quotes, got %v", quotes)
	}
}
