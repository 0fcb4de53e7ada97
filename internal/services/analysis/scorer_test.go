package analysis

import (
	"testing"

	"InvestLens/internal/domain/models"
)

func msftMetrics() models.MetricSet {
	return models.MetricSet{
		PERatio:        models.Metric{Value: 30, Valid: true},
		ReturnOnEquity: models.Metric{Value: 0.40, Valid: true},
		DebtToEquity:   models.Metric{Value: 0.47, Valid: true},
		ProfitMargin:   models.Metric{Value: 0.33, Valid: true},
	}
}

func msftSignals() *models.ContextualSignals {
	return &models.ContextualSignals{
		Sector:         "Technology",
		PEVsSector:     models.Delta{Ratio: 30.0 / 27.0, Valid: true},
		ROEVsSector:    models.Delta{Ratio: 0.40 / 0.17, Valid: true},
		MarginVsSector: models.Delta{Ratio: 0.33 / 0.12, Valid: true},
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())

	a := s.Score(msftMetrics(), msftSignals())
	b := s.Score(msftMetrics(), msftSignals())
	if a.Score != b.Score || a.Recommendation != b.Recommendation {
		t.Fatalf("same input produced %v then %v", a, b)
	}
}

func TestScoreFullProfileLandsInBuyBand(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	card := s.Score(msftMetrics(), msftSignals())

	if card.Score < 73 || card.Score > 77 {
		t.Fatalf("score = %.3f, want within [73,77]", card.Score)
	}
	if card.Recommendation != models.Buy {
		t.Fatalf("recommendation = %q, want Buy", card.Recommendation)
	}
	if card.Confidence != models.ConfidenceHigh {
		t.Fatalf("confidence = %q, want High with 4/5 metrics and context", card.Confidence)
	}
}

func TestScoreWithoutContextDegradesConfidence(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	card := s.Score(msftMetrics(), nil)

	if card.Confidence != models.ConfidenceMedium {
		t.Fatalf("confidence = %q, want Medium without context", card.Confidence)
	}
	if card.Recommendation != models.Buy {
		t.Fatalf("recommendation = %q, want Buy on base score", card.Recommendation)
	}
}

func TestScoreMonotonicInReturnOnEquity(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())

	low := msftMetrics()
	low.ReturnOnEquity.Value = 0.05
	high := msftMetrics()
	high.ReturnOnEquity.Value = 0.30

	if s.Score(low, nil).Score >= s.Score(high, nil).Score {
		t.Fatalf("higher ROE did not raise the score")
	}
}

func TestRecommendationThresholds(t *testing.T) {
	// An ascending curve over [0,80] makes the sub-score exactly value+10,
	// so threshold boundaries can be hit without rounding slack.
	cfg := DefaultScoringConfig()
	cfg.CurveReturnOnEquity = Curve{Lo: 0, Hi: 80, Ascending: true}
	s := NewScorer(cfg)

	cases := []struct {
		roe  float64
		want models.Recommendation
	}{
		{70, models.StrongBuy}, // exactly 80
		{55, models.Buy},       // exactly 65
		{35, models.Hold},      // exactly 45
		{15, models.Sell},      // exactly 25
		{10, models.StrongSell},
	}
	for _, tc := range cases {
		metrics := models.MetricSet{
			ReturnOnEquity: models.Metric{Value: tc.roe, Valid: true},
		}
		card := s.Score(metrics, nil)
		if card.Recommendation != tc.want {
			t.Fatalf("roe %.0f: score %.2f got %q, want %q", tc.roe, card.Score, card.Recommendation, tc.want)
		}
	}
}

func TestScoreNegativeFundamentalsPinToFloor(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	metrics := models.MetricSet{
		PERatio:        models.Metric{Value: -5, Valid: true},
		ReturnOnEquity: models.Metric{Value: -0.10, Valid: true},
		ProfitMargin:   models.Metric{Value: -0.05, Valid: true},
		DebtToEquity:   models.Metric{Value: 2.5, Valid: true},
		EarningsGrowth: models.Metric{Value: -0.30, Valid: true},
	}

	card := s.Score(metrics, nil)
	if card.Recommendation != models.StrongSell {
		t.Fatalf("recommendation = %q (score %.2f), want Strong Sell", card.Recommendation, card.Score)
	}
	if len(card.RiskNotes) == 0 {
		t.Fatalf("expected weakness notes for broken fundamentals")
	}
}

func TestScoreContextAdjustmentIsCapped(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	metrics := msftMetrics()

	sig := &models.ContextualSignals{
		ROEVsSector:    models.Delta{Ratio: 2.0, Valid: true},  // +2
		PEVsSector:     models.Delta{Ratio: 0.5, Valid: true},  // +2
		MarginVsSector: models.Delta{Ratio: 2.0, Valid: true},  // +1
		EarningsTrend:  models.TrendStrong,                     // +2
		TrendValid:     true,
	}

	base := s.Score(metrics, nil).Score
	adjusted := s.Score(metrics, sig).Score
	if got := adjusted - base; got < 4.999 || got > 5.001 {
		t.Fatalf("adjustment = %.3f, want capped at 5", got)
	}
}

func TestScoreNoMetricsReturnsLowConfidenceHold(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	card := s.Score(models.MetricSet{}, nil)

	if card.Recommendation != models.Hold || card.Confidence != models.ConfidenceLow {
		t.Fatalf("empty metrics gave %q/%q, want Hold/Low", card.Recommendation, card.Confidence)
	}
	if card.Score != 50 {
		t.Fatalf("score = %.2f, want neutral 50", card.Score)
	}
}

func TestScoreSparseMetricsLowersConfidence(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	metrics := models.MetricSet{
		PERatio:        models.Metric{Value: 18, Valid: true},
		ReturnOnEquity: models.Metric{Value: 0.12, Valid: true},
	}

	card := s.Score(metrics, nil)
	if card.Confidence != models.ConfidenceLow {
		t.Fatalf("confidence = %q, want Low at 2/5 coverage", card.Confidence)
	}
	found := false
	for _, note := range card.RiskNotes {
		if note == "Limited data: 2 of 5 core metrics available" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing limited-data note, got %v", card.RiskNotes)
	}
}
