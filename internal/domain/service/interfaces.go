package service

import (
	"context"

	"InvestLens/internal/domain/models"
)

// MarketData fetches a point-in-time snapshot for one ticker. Implementations
// own normalization, caching, provider fallback, and retry.
type MarketData interface {
	Fetch(ctx context.Context, ticker string) (*models.RawMarketSnapshot, error)
}

// Enricher produces optional contextual signals from the core metrics and the
// raw snapshot. The boolean reports whether enrichment actually ran; a false
// return is not an error, it is graceful degradation.
type Enricher interface {
	Enrich(ctx context.Context, metrics models.MetricSet, snapshot *models.RawMarketSnapshot) (models.ContextualSignals, bool)
}

// SectorStats provides baseline ratios per sector.
type SectorStats interface {
	Averages(ctx context.Context, sector string) (models.SectorAverages, error)
}
