package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const quoteSummaryFixture = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "regularMarketPrice": {"raw": 412.5, "fmt": "412.50"},
        "longName": "Microsoft Corporation"
      },
      "summaryDetail": {
        "trailingPE": {"raw": 30.0},
        "forwardPE": {"raw": 27.5},
        "marketCap": {"raw": 3060000000000},
        "dividendYield": {"raw": 0.0072}
      },
      "financialData": {
        "returnOnEquity": {"raw": 0.40},
        "debtToEquity": {"raw": 47.0},
        "profitMargins": {"raw": 0.33},
        "totalRevenue": {"raw": 245000000000},
        "revenueGrowth": {"raw": 0.15}
      },
      "defaultKeyStatistics": {
        "trailingEps": {"raw": 11.8},
        "enterpriseToEbitda": {"raw": 22.1},
        "beta": {"raw": 0.9}
      },
      "assetProfile": {
        "sector": "Technology",
        "industry": "Software - Infrastructure"
      }
    }],
    "error": null
  }
}`

func TestYahooFetchParsesQuoteSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v10/finance/quoteSummary/MSFT" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("modules"); got != yahooModules {
			t.Errorf("unexpected modules %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(quoteSummaryFixture))
	}))
	defer srv.Close()

	c := NewYahooClient(srv.URL, time.Second)
	snap, err := c.Fetch(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if snap.Name != "Microsoft Corporation" {
		t.Fatalf("name = %q", snap.Name)
	}
	if !snap.Price.Valid || snap.Price.Value != 412.5 {
		t.Fatalf("price = %+v", snap.Price)
	}
	if !snap.TrailingPE.Valid || snap.TrailingPE.Value != 30.0 {
		t.Fatalf("trailing pe = %+v", snap.TrailingPE)
	}
	if !snap.ReturnOnEquity.Valid || snap.ReturnOnEquity.Value != 0.40 {
		t.Fatalf("roe = %+v", snap.ReturnOnEquity)
	}
	if !snap.DebtToEquity.Valid || snap.DebtToEquity.Value != 47.0 {
		t.Fatalf("debt to equity = %+v", snap.DebtToEquity)
	}
	if snap.EarningsGrowth.Valid {
		t.Fatalf("earnings growth should be absent, got %+v", snap.EarningsGrowth)
	}
	if !snap.RevenueGrowth.Valid || snap.RevenueGrowth.Value != 0.15 {
		t.Fatalf("revenue growth = %+v", snap.RevenueGrowth)
	}
	if snap.Sector != "Technology" {
		t.Fatalf("sector = %q", snap.Sector)
	}
	if snap.Source != "yahoo" {
		t.Fatalf("source = %q", snap.Source)
	}
}

func TestYahooFetchReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found"}}}`))
	}))
	defer srv.Close()

	c := NewYahooClient(srv.URL, time.Second)
	if _, err := c.Fetch(context.Background(), "ZZZZZZ"); err == nil {
		t.Fatalf("expected error for API-level failure")
	}
}
