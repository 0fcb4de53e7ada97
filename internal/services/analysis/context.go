package analysis

import (
	"context"
	"fmt"
	"time"

	"InvestLens/internal/domain/models"
	"InvestLens/internal/domain/service"
	"InvestLens/pkg/logger"
)

// minEnrichTime is the smallest remaining deadline worth starting enrichment
// for.
const minEnrichTime = 10 * time.Millisecond

// Earnings trend thresholds.
const (
	trendStrongAbove   = 0.15
	trendModerateAbove = 0.05
)

// ContextualAnalyzer implements service.Enricher. It compares the metrics
// against sector baselines and classifies trend, risk, and growth. Enrichment
// is strictly best-effort: any shortfall degrades to a skip, never an error.
type ContextualAnalyzer struct {
	stats  service.SectorStats
	logger *logger.Logger
}

func NewContextualAnalyzer(stats service.SectorStats, log *logger.Logger) *ContextualAnalyzer {
	return &ContextualAnalyzer{stats: stats, logger: log}
}

func (a *ContextualAnalyzer) Enrich(ctx context.Context, metrics models.MetricSet, snap *models.RawMarketSnapshot) (models.ContextualSignals, bool) {
	if !snap.HasSector() {
		return models.ContextualSignals{}, false
	}
	if ctx.Err() != nil {
		return models.ContextualSignals{}, false
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < minEnrichTime {
		return models.ContextualSignals{}, false
	}

	avg, err := a.stats.Averages(ctx, snap.Sector)
	if err != nil {
		a.logger.Warn("sector baseline lookup failed",
			logger.String("sector", snap.Sector),
			logger.Error(err))
		return models.ContextualSignals{}, false
	}

	sig := models.ContextualSignals{
		Sector:         snap.Sector,
		PEVsSector:     delta(metrics.PERatio, avg.PERatio),
		ROEVsSector:    delta(metrics.ReturnOnEquity, avg.ReturnOnEquity),
		MarginVsSector: delta(metrics.ProfitMargin, avg.ProfitMargin),
	}

	if metrics.EarningsGrowth.Valid {
		sig.EarningsTrend = classifyTrend(metrics.EarningsGrowth.Value)
		sig.TrendValid = true
	}
	sig.RiskAssessment = assessRisk(snap.Beta, metrics.DebtToEquity)
	sig.GrowthProfile = assessGrowth(metrics.EarningsGrowth)
	sig.Bullets = buildBullets(sig, metrics)

	return sig, true
}

func delta(m models.Metric, avg float64) models.Delta {
	if !m.Valid || avg <= 0 {
		return models.Delta{}
	}
	return models.Delta{Ratio: m.Value / avg, Valid: true}
}

func classifyTrend(growth float64) models.TrendClass {
	switch {
	case growth > trendStrongAbove:
		return models.TrendStrong
	case growth > trendModerateAbove:
		return models.TrendModerate
	case growth >= 0:
		return models.TrendFlat
	default:
		return models.TrendDeclining
	}
}

// assessRisk grades volatility and leverage together.
func assessRisk(beta models.OptionalFloat, debt models.Metric) string {
	high := (beta.Valid && beta.Value > 1.5) || (debt.Valid && debt.Value > 2)
	if high {
		return "high"
	}
	elevated := (beta.Valid && beta.Value > 1.0) || (debt.Valid && debt.Value > 1)
	if elevated {
		return "moderate"
	}
	if !beta.Valid && !debt.Valid {
		return "unknown"
	}
	return "low"
}

func assessGrowth(growth models.Metric) string {
	if !growth.Valid {
		return "unknown"
	}
	switch {
	case growth.Value > trendStrongAbove:
		return "high growth"
	case growth.Value > trendModerateAbove:
		return "steady growth"
	case growth.Value >= 0:
		return "slow growth"
	default:
		return "contracting"
	}
}

func buildBullets(sig models.ContextualSignals, metrics models.MetricSet) []string {
	var out []string

	if sig.ROEVsSector.Valid {
		switch {
		case sig.ROEVsSector.Ratio > 1.2:
			out = append(out, fmt.Sprintf("Return on equity well above the %s sector average", sig.Sector))
		case sig.ROEVsSector.Ratio < 0.8:
			out = append(out, fmt.Sprintf("Return on equity lags the %s sector average", sig.Sector))
		}
	}
	if sig.PEVsSector.Valid {
		switch {
		case sig.PEVsSector.Ratio < 0.8:
			out = append(out, "Valuation below sector norms")
		case sig.PEVsSector.Ratio > 1.2:
			out = append(out, "Valuation at a premium to sector norms")
		}
	}
	if sig.TrendValid {
		switch sig.EarningsTrend {
		case models.TrendStrong:
			out = append(out, fmt.Sprintf("Strong earnings momentum (%.0f%% growth)", metrics.EarningsGrowth.Value*100))
		case models.TrendDeclining:
			out = append(out, "Earnings are declining year over year")
		}
	}
	if sig.RiskAssessment == "high" {
		out = append(out, "Elevated risk from volatility or leverage")
	}
	return out
}
