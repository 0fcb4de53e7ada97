package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"InvestLens/internal/domain/models"
	"InvestLens/internal/domain/repository"
	"InvestLens/internal/service/ratelimit"
	"InvestLens/pkg/cache"
	pkghttp "InvestLens/pkg/http"
	"InvestLens/pkg/logger"
	"InvestLens/pkg/util"
)

const snapshotKeyPrefix = "snapshot:"

// Provider is one upstream market data source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, ticker string) (*models.RawMarketSnapshot, error)
}

// GatewayConfig tunes retry, backoff, rate limiting, and caching behavior.
type GatewayConfig struct {
	RetryMax     int
	BackoffBase  time.Duration
	RateCapacity float64
	RateRefill   float64
	SnapshotTTL  time.Duration
}

// Gateway is the single entry point for market data. It validates tickers,
// serves cached snapshots, and walks the provider chain with retry and
// per-provider rate limiting. All failures escape as *GatewayError.
type Gateway struct {
	providers []Provider
	cache     cache.Service
	limiter   *ratelimit.Limiter
	logger    *logger.Logger
	metrics   repository.Metrics
	cfg       GatewayConfig
}

func NewGateway(
	providers []Provider,
	cacheService cache.Service,
	limiter *ratelimit.Limiter,
	log *logger.Logger,
	metrics repository.Metrics,
	cfg GatewayConfig,
) *Gateway {
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = 100 * time.Millisecond
	}
	return &Gateway{
		providers: providers,
		cache:     cacheService,
		limiter:   limiter,
		logger:    log,
		metrics:   metrics,
		cfg:       cfg,
	}
}

// Fetch returns a snapshot for ticker, from cache when fresh. The ticker is
// normalized and validated before any network or cache access.
func (g *Gateway) Fetch(ctx context.Context, ticker string) (*models.RawMarketSnapshot, error) {
	normalized := util.NormalizeTicker(ticker)
	if !util.IsValidTicker(normalized) {
		g.metrics.RecordError(KindInvalidTicker)
		return nil, invalidTickerError(ticker)
	}

	key := snapshotKeyPrefix + normalized
	var cached models.RawMarketSnapshot
	if err := g.cache.Get(ctx, key, &cached); err == nil {
		g.logger.Debug("snapshot cache hit", logger.String("ticker", normalized))
		return &cached, nil
	}

	snap, err := g.fetchFromProviders(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if err := g.cache.Set(ctx, key, snap, g.cfg.SnapshotTTL); err != nil {
		g.logger.Warn("snapshot cache store failed",
			logger.String("ticker", normalized),
			logger.Error(err))
	}
	return snap, nil
}

func (g *Gateway) fetchFromProviders(ctx context.Context, ticker string) (*models.RawMarketSnapshot, error) {
	var lastErr error
	rateLimited := 0

	for _, p := range g.providers {
		if !g.limiter.Allow(p.Name(), g.cfg.RateCapacity, g.cfg.RateRefill) {
			g.logger.Warn("provider rate limit exhausted locally",
				logger.String("provider", p.Name()),
				logger.String("ticker", ticker))
			g.metrics.RecordProviderCall(p.Name(), "throttled")
			rateLimited++
			lastErr = fmt.Errorf("%s: local rate limit exhausted", p.Name())
			continue
		}

		snap, err := g.fetchWithRetry(ctx, p, ticker)
		if err == nil {
			g.metrics.RecordProviderCall(p.Name(), "success")
			g.logger.Info("snapshot fetched",
				logger.String("ticker", ticker),
				logger.String("provider", p.Name()))
			return snap, nil
		}

		lastErr = err
		if isRateLimit(err) {
			// Back the provider off for a while so subsequent requests skip
			// straight to the fallback.
			g.limiter.Block(p.Name(), 30*time.Second)
			g.metrics.RecordProviderCall(p.Name(), "rate_limited")
			rateLimited++
		} else {
			g.metrics.RecordProviderCall(p.Name(), "error")
		}
		g.logger.Warn("provider failed",
			logger.String("provider", p.Name()),
			logger.String("ticker", ticker),
			logger.Error(err))
	}

	if rateLimited == len(g.providers) && rateLimited > 0 {
		g.metrics.RecordError(KindRateLimited)
		return nil, rateLimitedError(ticker, lastErr)
	}
	g.metrics.RecordError(KindUnavailable)
	return nil, unavailableError(ticker, lastErr)
}

func (g *Gateway) fetchWithRetry(ctx context.Context, p Provider, ticker string) (*models.RawMarketSnapshot, error) {
	var lastErr error
	for attempt := 0; attempt < g.cfg.RetryMax; attempt++ {
		if attempt > 0 {
			backoff := g.cfg.BackoffBase * time.Duration(1<<attempt)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		snap, err := p.Fetch(ctx, ticker)
		if err == nil {
			return snap, nil
		}
		lastErr = err

		if isRateLimit(err) || !isTransient(err) {
			break
		}
	}
	return nil, lastErr
}

// isRateLimit reports an upstream 429.
func isRateLimit(err error) bool {
	var se *pkghttp.StatusError
	return errors.As(err, &se) && se.Code == 429
}

// isTransient reports errors worth retrying on the same provider: upstream
// 5xx responses, timeouts, and cancelled transport calls.
func isTransient(err error) bool {
	var se *pkghttp.StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
