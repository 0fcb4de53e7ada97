package analysis

import (
	"context"
	"strings"
	"testing"
	"time"

	"InvestLens/internal/domain/models"
)

// Exercises extractor, contextual analyzer, and scorer together on the
// healthy large-cap profile.
func TestFullAnalysisChainForHealthyLargeCap(t *testing.T) {
	snap := &models.RawMarketSnapshot{
		Ticker:         "MSFT",
		Name:           "Microsoft Corporation",
		Source:         "yahoo",
		Price:          models.Float(412.5),
		ForwardPE:      models.Float(30),
		ReturnOnEquity: models.Float(0.40),
		DebtToEquity:   models.Float(47), // percent-style, normalizes to 0.47
		ProfitMargin:   models.Float(0.33),
		Beta:           models.Float(0.9),
		Sector:         "Technology",
		RetrievedAt:    time.Now(),
	}

	metrics := NewExtractor().Extract(snap)
	if metrics.ValidCount() != 4 {
		t.Fatalf("valid metrics = %d, want 4", metrics.ValidCount())
	}
	if metrics.DebtToEquity.Value != 0.47 {
		t.Fatalf("d/e = %v, want normalized 0.47", metrics.DebtToEquity.Value)
	}

	sig, ok := newContextAnalyzer(t).Enrich(context.Background(), metrics, snap)
	if !ok {
		t.Fatalf("expected enrichment to run")
	}

	card := NewScorer(DefaultScoringConfig()).Score(metrics, &sig)
	if card.Recommendation != models.Buy {
		t.Fatalf("recommendation = %q (score %.2f), want Buy", card.Recommendation, card.Score)
	}
	if card.Confidence != models.ConfidenceHigh {
		t.Fatalf("confidence = %q, want High", card.Confidence)
	}
	if card.Score < 73 || card.Score > 77 {
		t.Fatalf("score = %.3f, want within [73,77]", card.Score)
	}

	joined := strings.Join(card.Insights, "\n")
	if !strings.Contains(joined, "profit margin") {
		t.Fatalf("missing margin strength insight: %v", card.Insights)
	}
	if !strings.Contains(joined, "return on equity") {
		t.Fatalf("missing ROE strength insight: %v", card.Insights)
	}
	if !strings.Contains(joined, "above the Technology sector average") {
		t.Fatalf("missing sector-relative ROE bullet: %v", card.Insights)
	}
}
