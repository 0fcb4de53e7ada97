package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"InvestLens/internal/domain/models"
	"InvestLens/internal/service/ratelimit"
	"InvestLens/pkg/cache"
	pkghttp "InvestLens/pkg/http"
	"InvestLens/pkg/logger"
)

type fakeProvider struct {
	name  string
	calls int
	errs  []error
	snap  *models.RawMarketSnapshot
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(_ context.Context, ticker string) (*models.RawMarketSnapshot, error) {
	f.calls++
	if f.calls <= len(f.errs) {
		return nil, f.errs[f.calls-1]
	}
	if f.snap != nil {
		return f.snap, nil
	}
	return &models.RawMarketSnapshot{Ticker: ticker, Source: f.name, RetrievedAt: time.Now()}, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordAnalysis(string, string)     {}
func (nopMetrics) RecordProviderCall(string, string) {}
func (nopMetrics) RecordError(string)                {}
func (nopMetrics) RecordScore(string, float64)       {}
func (nopMetrics) RecordPhaseLatency(string, float64) {
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "fatal", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return log
}

func newTestGateway(t *testing.T, providers ...Provider) (*Gateway, cache.Service) {
	t.Helper()
	mem := cache.NewMemoryCache(cache.WithMemoryMaxSize(16))
	t.Cleanup(func() { mem.Close() })

	g := NewGateway(providers, mem, ratelimit.New(), newTestLogger(t), nopMetrics{}, GatewayConfig{
		RetryMax:     3,
		BackoffBase:  time.Millisecond,
		RateCapacity: 100,
		RateRefill:   100,
		SnapshotTTL:  time.Minute,
	})
	return g, mem
}

func TestFetchRejectsInvalidTickerBeforeProviders(t *testing.T) {
	p := &fakeProvider{name: "yahoo"}
	g, _ := newTestGateway(t, p)

	_, err := g.Fetch(context.Background(), "..bad..")
	ge, ok := AsGatewayError(err)
	if !ok || ge.Kind != KindInvalidTicker {
		t.Fatalf("expected invalid_ticker error, got %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("provider called %d times for invalid ticker", p.calls)
	}
}

func TestFetchNormalizesTicker(t *testing.T) {
	p := &fakeProvider{name: "yahoo"}
	g, _ := newTestGateway(t, p)

	snap, err := g.Fetch(context.Background(), "  msft ")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.Ticker != "MSFT" {
		t.Fatalf("expected normalized ticker MSFT, got %q", snap.Ticker)
	}
}

func TestFetchFallsBackToSecondProvider(t *testing.T) {
	primary := &fakeProvider{name: "yahoo", errs: []error{
		errors.New("boom"), errors.New("boom"), errors.New("boom"),
	}}
	fallback := &fakeProvider{name: "finnhub"}
	g, _ := newTestGateway(t, primary, fallback)

	snap, err := g.Fetch(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.Source != "finnhub" {
		t.Fatalf("expected fallback snapshot, got source %q", snap.Source)
	}
}

func TestFetchRetriesTransientErrors(t *testing.T) {
	p := &fakeProvider{name: "yahoo", errs: []error{
		&pkghttp.StatusError{Code: 503},
		&pkghttp.StatusError{Code: 502},
	}}
	g, _ := newTestGateway(t, p)

	if _, err := g.Fetch(context.Background(), "AAPL"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if p.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", p.calls)
	}
}

func TestFetchDoesNotRetryPermanentErrors(t *testing.T) {
	primary := &fakeProvider{name: "yahoo", errs: []error{
		&pkghttp.StatusError{Code: 404},
		&pkghttp.StatusError{Code: 404},
		&pkghttp.StatusError{Code: 404},
	}}
	fallback := &fakeProvider{name: "finnhub"}
	g, _ := newTestGateway(t, primary, fallback)

	if _, err := g.Fetch(context.Background(), "AAPL"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if primary.calls != 1 {
		t.Fatalf("expected single attempt on 404, got %d", primary.calls)
	}
}

func TestFetchClassifiesAllProvidersRateLimited(t *testing.T) {
	limited := func(name string) *fakeProvider {
		return &fakeProvider{name: name, errs: []error{
			&pkghttp.StatusError{Code: 429},
			&pkghttp.StatusError{Code: 429},
			&pkghttp.StatusError{Code: 429},
		}}
	}
	g, _ := newTestGateway(t, limited("yahoo"), limited("finnhub"))

	_, err := g.Fetch(context.Background(), "AAPL")
	ge, ok := AsGatewayError(err)
	if !ok || ge.Kind != KindRateLimited {
		t.Fatalf("expected rate_limited error, got %v", err)
	}
}

func TestFetchClassifiesUnavailable(t *testing.T) {
	p := &fakeProvider{name: "yahoo", errs: []error{
		errors.New("boom"), errors.New("boom"), errors.New("boom"),
	}}
	g, _ := newTestGateway(t, p)

	_, err := g.Fetch(context.Background(), "AAPL")
	ge, ok := AsGatewayError(err)
	if !ok || ge.Kind != KindUnavailable {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestFetchServesFromCache(t *testing.T) {
	p := &fakeProvider{name: "yahoo"}
	g, _ := newTestGateway(t, p)

	if _, err := g.Fetch(context.Background(), "MSFT"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := g.Fetch(context.Background(), "msft"); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("expected one provider call, got %d", p.calls)
	}
}
