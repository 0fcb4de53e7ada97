package analysis

import (
	"fmt"

	"InvestLens/internal/domain/models"
)

// Sub-score bounds. Normalizers map raw values into [10,90] so no single
// metric can saturate the composite on its own.
const (
	subScoreFloor = 10
	subScoreCeil  = 90
)

// Curve is a clamped linear normalizer over [Lo,Hi]. Ascending curves reward
// larger values; descending curves reward smaller ones.
type Curve struct {
	Lo, Hi    float64
	Ascending bool
}

// Normalize maps v onto [subScoreFloor, subScoreCeil].
func (c Curve) Normalize(v float64) float64 {
	t := (v - c.Lo) / (c.Hi - c.Lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if c.Ascending {
		return subScoreFloor + (subScoreCeil-subScoreFloor)*t
	}
	return subScoreCeil - (subScoreCeil-subScoreFloor)*t
}

// ScoringConfig is the immutable scoring contract: metric weights,
// normalization curves, recommendation thresholds, and the context
// adjustment cap.
type ScoringConfig struct {
	WeightPERatio        float64
	WeightReturnOnEquity float64
	WeightDebtToEquity   float64
	WeightProfitMargin   float64
	WeightEarningsGrowth float64

	CurvePERatio        Curve
	CurveReturnOnEquity Curve
	CurveDebtToEquity   Curve
	CurveProfitMargin   Curve
	CurveEarningsGrowth Curve

	StrongBuyAt float64
	BuyAt       float64
	HoldAt      float64
	SellAt      float64

	ContextCap float64
}

// DefaultScoringConfig returns the production contract.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		WeightPERatio:        0.25,
		WeightReturnOnEquity: 0.20,
		WeightDebtToEquity:   0.15,
		WeightProfitMargin:   0.25,
		WeightEarningsGrowth: 0.15,

		CurvePERatio:        Curve{Lo: 8, Hi: 45, Ascending: false},
		CurveReturnOnEquity: Curve{Lo: 0, Hi: 0.35, Ascending: true},
		CurveDebtToEquity:   Curve{Lo: 0.1, Hi: 1.5, Ascending: false},
		CurveProfitMargin:   Curve{Lo: 0, Hi: 0.30, Ascending: true},
		CurveEarningsGrowth: Curve{Lo: -0.10, Hi: 0.30, Ascending: true},

		StrongBuyAt: 80,
		BuyAt:       65,
		HoldAt:      45,
		SellAt:      25,

		ContextCap: 5,
	}
}

// Scorecard is the scoring output for one run.
type Scorecard struct {
	Score          float64
	Recommendation models.Recommendation
	Confidence     models.Confidence
	Insights       []string
	RiskNotes      []string
}

// Scorer turns a metric set and optional contextual signals into a scored
// recommendation. Stateless and deterministic for a given config.
type Scorer struct {
	cfg ScoringConfig
}

func NewScorer(cfg ScoringConfig) *Scorer { return &Scorer{cfg: cfg} }

type subScore struct {
	value    float64
	weight   float64
	score    float64
	valid    bool
	strength string
	weakness string
}

// Score computes the composite. Pass nil signals when contextual analysis was
// skipped; the adjustment and High confidence are then unavailable.
func (s *Scorer) Score(metrics models.MetricSet, signals *models.ContextualSignals) Scorecard {
	subs := []subScore{
		{
			value:    metrics.PERatio.Value,
			weight:   s.cfg.WeightPERatio,
			score:    normalizePE(s.cfg.CurvePERatio, metrics.PERatio),
			valid:    metrics.PERatio.Valid,
			strength: fmt.Sprintf("Attractive valuation (P/E %.1f)", metrics.PERatio.Value),
			weakness: fmt.Sprintf("Expensive valuation (P/E %.1f)", metrics.PERatio.Value),
		},
		{
			value:    metrics.ReturnOnEquity.Value,
			weight:   s.cfg.WeightReturnOnEquity,
			score:    normalizeNonNegative(s.cfg.CurveReturnOnEquity, metrics.ReturnOnEquity),
			valid:    metrics.ReturnOnEquity.Valid,
			strength: fmt.Sprintf("Excellent return on equity (%.1f%%)", metrics.ReturnOnEquity.Value*100),
			weakness: fmt.Sprintf("Weak return on equity (%.1f%%)", metrics.ReturnOnEquity.Value*100),
		},
		{
			value:    metrics.DebtToEquity.Value,
			weight:   s.cfg.WeightDebtToEquity,
			score:    s.cfg.CurveDebtToEquity.Normalize(metrics.DebtToEquity.Value),
			valid:    metrics.DebtToEquity.Valid,
			strength: fmt.Sprintf("Conservative balance sheet (D/E %.2f)", metrics.DebtToEquity.Value),
			weakness: fmt.Sprintf("Heavy debt load (D/E %.2f)", metrics.DebtToEquity.Value),
		},
		{
			value:    metrics.ProfitMargin.Value,
			weight:   s.cfg.WeightProfitMargin,
			score:    normalizeNonNegative(s.cfg.CurveProfitMargin, metrics.ProfitMargin),
			valid:    metrics.ProfitMargin.Valid,
			strength: fmt.Sprintf("High profit margin (%.1f%%)", metrics.ProfitMargin.Value*100),
			weakness: fmt.Sprintf("Thin profit margin (%.1f%%)", metrics.ProfitMargin.Value*100),
		},
		{
			value:    metrics.EarningsGrowth.Value,
			weight:   s.cfg.WeightEarningsGrowth,
			score:    s.cfg.CurveEarningsGrowth.Normalize(metrics.EarningsGrowth.Value),
			valid:    metrics.EarningsGrowth.Valid,
			strength: fmt.Sprintf("Rapid earnings growth (%.1f%%)", metrics.EarningsGrowth.Value*100),
			weakness: fmt.Sprintf("Shrinking earnings (%.1f%%)", metrics.EarningsGrowth.Value*100),
		},
	}

	var weightedSum, weightTotal float64
	var insights, risks []string
	for _, sub := range subs {
		if !sub.valid {
			continue
		}
		weightedSum += sub.weight * sub.score
		weightTotal += sub.weight
		if sub.score >= 80 {
			insights = append(insights, sub.strength)
		} else if sub.score <= 30 {
			risks = append(risks, sub.weakness)
		}
	}

	// The gateway fails the run before an all-invalid set normally reaches
	// here; fall back to a neutral stance just in case.
	if weightTotal == 0 {
		return Scorecard{
			Score:          50,
			Recommendation: models.Hold,
			Confidence:     models.ConfidenceLow,
			RiskNotes:      []string{"No scoreable metrics available"},
		}
	}

	score := weightedSum / weightTotal

	if signals != nil {
		score += s.contextAdjustment(signals)
		insights = append(insights, signals.Bullets...)
		if signals.RiskAssessment == "high" {
			risks = append(risks, "Elevated overall risk profile")
		}
	}
	score = clamp(score, 0, 100)

	coverage := metrics.Coverage()
	if coverage < 0.8 {
		risks = append(risks, fmt.Sprintf("Limited data: %d of %d core metrics available",
			metrics.ValidCount(), models.CanonicalMetricCount))
	}

	return Scorecard{
		Score:          score,
		Recommendation: s.recommend(score),
		Confidence:     confidence(coverage, signals != nil),
		Insights:       insights,
		RiskNotes:      risks,
	}
}

// contextAdjustment nudges the composite by at most ±ContextCap based on
// sector-relative standing and earnings trend.
func (s *Scorer) contextAdjustment(sig *models.ContextualSignals) float64 {
	var adj float64

	if sig.ROEVsSector.Valid {
		if sig.ROEVsSector.Ratio > 1.2 {
			adj += 2
		} else if sig.ROEVsSector.Ratio < 0.8 {
			adj -= 2
		}
	}
	if sig.PEVsSector.Valid {
		if sig.PEVsSector.Ratio < 0.8 {
			adj += 2
		} else if sig.PEVsSector.Ratio > 1.2 {
			adj -= 2
		}
	}
	if sig.MarginVsSector.Valid {
		if sig.MarginVsSector.Ratio > 1.2 {
			adj++
		} else if sig.MarginVsSector.Ratio < 0.8 {
			adj--
		}
	}
	if sig.TrendValid {
		switch sig.EarningsTrend {
		case models.TrendStrong:
			adj += 2
		case models.TrendModerate:
			adj++
		case models.TrendDeclining:
			adj -= 2
		}
	}

	return clamp(adj, -s.cfg.ContextCap, s.cfg.ContextCap)
}

func (s *Scorer) recommend(score float64) models.Recommendation {
	switch {
	case score >= s.cfg.StrongBuyAt:
		return models.StrongBuy
	case score >= s.cfg.BuyAt:
		return models.Buy
	case score >= s.cfg.HoldAt:
		return models.Hold
	case score >= s.cfg.SellAt:
		return models.Sell
	default:
		return models.StrongSell
	}
}

func confidence(coverage float64, contextApplied bool) models.Confidence {
	if coverage >= 0.8 && contextApplied {
		return models.ConfidenceHigh
	}
	if coverage >= 0.5 {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}

// normalizePE pins non-positive earnings to a deep-weakness score instead of
// rewarding them as a cheap multiple.
func normalizePE(c Curve, m models.Metric) float64 {
	if m.Value <= 0 {
		return 20
	}
	return c.Normalize(m.Value)
}

// normalizeNonNegative pins negative ratios to the floor.
func normalizeNonNegative(c Curve, m models.Metric) float64 {
	if m.Value < 0 {
		return subScoreFloor
	}
	return c.Normalize(m.Value)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
