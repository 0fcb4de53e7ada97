package analysis

import (
	"InvestLens/internal/domain/models"
)

// debtRatioThreshold separates percent-style debt/equity readings (Yahoo
// reports 47.0 for 0.47) from plain ratios.
const debtRatioThreshold = 10

// Extractor derives the canonical metric set from a raw snapshot. Pure
// computation, no I/O.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract maps provider fields onto the canonical metrics, applying
// derivation fallbacks. A metric with neither a direct value nor derivable
// components stays invalid.
func (e *Extractor) Extract(snap *models.RawMarketSnapshot) models.MetricSet {
	var m models.MetricSet

	m.PERatio = extractPERatio(snap)
	m.ReturnOnEquity = fromOptional(snap.ReturnOnEquity)
	m.DebtToEquity = extractDebtToEquity(snap)
	m.ProfitMargin = extractProfitMargin(snap)
	m.EarningsGrowth = extractEarningsGrowth(snap)

	return m
}

func fromOptional(v models.OptionalFloat) models.Metric {
	return models.Metric{Value: v.Value, Valid: v.Valid}
}

// extractPERatio prefers the forward multiple, falls back to trailing, and
// finally derives price/EPS when both components exist and EPS is positive.
func extractPERatio(snap *models.RawMarketSnapshot) models.Metric {
	if snap.ForwardPE.Valid {
		return models.Metric{Value: snap.ForwardPE.Value, Valid: true}
	}
	if snap.TrailingPE.Valid {
		return models.Metric{Value: snap.TrailingPE.Value, Valid: true}
	}
	if snap.Price.Valid && snap.EPS.Valid && snap.EPS.Value > 0 {
		return models.Metric{Value: snap.Price.Value / snap.EPS.Value, Valid: true, Derived: true}
	}
	return models.Metric{}
}

// extractDebtToEquity normalizes percent-style readings to a plain ratio.
func extractDebtToEquity(snap *models.RawMarketSnapshot) models.Metric {
	if !snap.DebtToEquity.Valid {
		return models.Metric{}
	}
	v := snap.DebtToEquity.Value
	if v > debtRatioThreshold {
		v /= 100
	}
	return models.Metric{Value: v, Valid: true}
}

func extractProfitMargin(snap *models.RawMarketSnapshot) models.Metric {
	if snap.ProfitMargin.Valid {
		return models.Metric{Value: snap.ProfitMargin.Value, Valid: true}
	}
	if snap.NetIncome.Valid && snap.TotalRevenue.Valid && snap.TotalRevenue.Value > 0 {
		return models.Metric{Value: snap.NetIncome.Value / snap.TotalRevenue.Value, Valid: true, Derived: true}
	}
	return models.Metric{}
}

// extractEarningsGrowth uses revenue growth as a proxy when earnings growth
// is unreported; the proxy is flagged as derived.
func extractEarningsGrowth(snap *models.RawMarketSnapshot) models.Metric {
	if snap.EarningsGrowth.Valid {
		return models.Metric{Value: snap.EarningsGrowth.Value, Valid: true}
	}
	if snap.RevenueGrowth.Valid {
		return models.Metric{Value: snap.RevenueGrowth.Value, Valid: true, Derived: true}
	}
	return models.Metric{}
}
