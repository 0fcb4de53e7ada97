package marketdata

import (
	"context"
	"fmt"
	"time"

	"InvestLens/internal/domain/models"
	pkghttp "InvestLens/pkg/http"
)

type finnhubProfile struct {
	Name                 string  `json:"name"`
	FinnhubIndustry      string  `json:"finnhubIndustry"`
	MarketCapitalization float64 `json:"marketCapitalization"` // millions
}

type finnhubQuote struct {
	Current float64 `json:"c"`
}

type finnhubMetrics struct {
	Metric map[string]*float64 `json:"metric"`
}

// FinnhubClient fetches fundamentals from the Finnhub REST API. It combines
// the profile, metric, and quote endpoints into one snapshot.
type FinnhubClient struct {
	baseURL string
	apiKey  string
	client  *pkghttp.Client
}

func NewFinnhubClient(baseURL, apiKey string, timeout time.Duration) *FinnhubClient {
	return &FinnhubClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  pkghttp.NewClient(pkghttp.WithTimeout(timeout)),
	}
}

func (c *FinnhubClient) Name() string { return "finnhub" }

func (c *FinnhubClient) get(ctx context.Context, path, ticker string, extra map[string][]string, dest interface{}) error {
	params := map[string][]string{"symbol": {ticker}}
	for k, v := range extra {
		params[k] = v
	}
	return c.client.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method:      pkghttp.MethodGet,
		URL:         c.baseURL + path,
		Headers:     map[string]string{"X-Finnhub-Token": c.apiKey},
		QueryParams: params,
	}, dest)
}

// Fetch retrieves fundamentals for ticker. Finnhub reports ratio metrics as
// percentages, so they are rescaled to fractions here.
func (c *FinnhubClient) Fetch(ctx context.Context, ticker string) (*models.RawMarketSnapshot, error) {
	var metrics finnhubMetrics
	if err := c.get(ctx, "/stock/metric", ticker, map[string][]string{"metric": {"all"}}, &metrics); err != nil {
		return nil, err
	}
	if len(metrics.Metric) == 0 {
		return nil, fmt.Errorf("finnhub: no metrics for %s", ticker)
	}

	var profile finnhubProfile
	if err := c.get(ctx, "/stock/profile2", ticker, nil, &profile); err != nil {
		return nil, err
	}

	var quote finnhubQuote
	if err := c.get(ctx, "/quote", ticker, nil, &quote); err != nil {
		return nil, err
	}

	m := func(key string) models.OptionalFloat {
		return models.FloatPtr(metrics.Metric[key])
	}
	pct := func(key string) models.OptionalFloat {
		v := m(key)
		if v.Valid {
			v.Value /= 100
		}
		return v
	}

	pe := m("peTTM")
	if !pe.Valid {
		pe = m("peBasicExclExtraTTM")
	}

	snap := &models.RawMarketSnapshot{
		Ticker:         ticker,
		Name:           profile.Name,
		Source:         c.Name(),
		TrailingPE:     pe,
		ReturnOnEquity: pct("roeTTM"),
		DebtToEquity:   m("totalDebt/totalEquityQuarterly"),
		ProfitMargin:   pct("netProfitMarginTTM"),
		EPS:            m("epsTTM"),
		EarningsGrowth: pct("epsGrowthTTMYoy"),
		RevenueGrowth:  pct("revenueGrowthTTMYoy"),
		Beta:           m("beta"),
		DividendYield:  pct("currentDividendYieldTTM"),
		Sector:         profile.FinnhubIndustry,
		RetrievedAt:    time.Now().UTC(),
	}
	if quote.Current > 0 {
		snap.Price = models.Float(quote.Current)
	}
	if profile.MarketCapitalization > 0 {
		snap.MarketCap = models.Float(profile.MarketCapitalization * 1e6)
	}
	return snap, nil
}
