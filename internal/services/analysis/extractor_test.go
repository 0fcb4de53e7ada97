package analysis

import (
	"testing"

	"InvestLens/internal/domain/models"
)

func TestExtractPERatioPrefersForward(t *testing.T) {
	e := NewExtractor()
	m := e.Extract(&models.RawMarketSnapshot{
		ForwardPE:  models.Float(25),
		TrailingPE: models.Float(30),
	})
	if !m.PERatio.Valid || m.PERatio.Value != 25 {
		t.Fatalf("pe = %+v, want forward 25", m.PERatio)
	}
	if m.PERatio.Derived {
		t.Fatalf("direct forward P/E marked derived")
	}
}

func TestExtractPERatioFallsBackToTrailing(t *testing.T) {
	e := NewExtractor()
	m := e.Extract(&models.RawMarketSnapshot{TrailingPE: models.Float(30)})
	if !m.PERatio.Valid || m.PERatio.Value != 30 {
		t.Fatalf("pe = %+v, want trailing 30", m.PERatio)
	}
}

func TestExtractPERatioDerivesFromPriceAndEPS(t *testing.T) {
	e := NewExtractor()
	m := e.Extract(&models.RawMarketSnapshot{
		Price: models.Float(100),
		EPS:   models.Float(4),
	})
	if !m.PERatio.Valid || m.PERatio.Value != 25 || !m.PERatio.Derived {
		t.Fatalf("pe = %+v, want derived 25", m.PERatio)
	}
}

func TestExtractPERatioInvalidForNegativeEPS(t *testing.T) {
	e := NewExtractor()
	m := e.Extract(&models.RawMarketSnapshot{
		Price: models.Float(100),
		EPS:   models.Float(-2),
	})
	if m.PERatio.Valid {
		t.Fatalf("pe should be invalid with negative EPS, got %+v", m.PERatio)
	}
}

func TestExtractDebtToEquityNormalizesPercent(t *testing.T) {
	e := NewExtractor()
	m := e.Extract(&models.RawMarketSnapshot{DebtToEquity: models.Float(47)})
	if !m.DebtToEquity.Valid || m.DebtToEquity.Value != 0.47 {
		t.Fatalf("d/e = %+v, want 0.47", m.DebtToEquity)
	}

	m = e.Extract(&models.RawMarketSnapshot{DebtToEquity: models.Float(0.8)})
	if !m.DebtToEquity.Valid || m.DebtToEquity.Value != 0.8 {
		t.Fatalf("d/e = %+v, want untouched 0.8", m.DebtToEquity)
	}
}

func TestExtractProfitMarginDerivesFromComponents(t *testing.T) {
	e := NewExtractor()
	m := e.Extract(&models.RawMarketSnapshot{
		NetIncome:    models.Float(25),
		TotalRevenue: models.Float(100),
	})
	if !m.ProfitMargin.Valid || m.ProfitMargin.Value != 0.25 || !m.ProfitMargin.Derived {
		t.Fatalf("margin = %+v, want derived 0.25", m.ProfitMargin)
	}
}

func TestExtractEarningsGrowthUsesRevenueProxy(t *testing.T) {
	e := NewExtractor()
	m := e.Extract(&models.RawMarketSnapshot{RevenueGrowth: models.Float(0.12)})
	if !m.EarningsGrowth.Valid || m.EarningsGrowth.Value != 0.12 || !m.EarningsGrowth.Derived {
		t.Fatalf("growth = %+v, want derived proxy 0.12", m.EarningsGrowth)
	}
}

func TestExtractMissingDataStaysInvalid(t *testing.T) {
	e := NewExtractor()
	m := e.Extract(&models.RawMarketSnapshot{Ticker: "EMPTY"})
	if m.ValidCount() != 0 {
		t.Fatalf("expected no valid metrics, got %d", m.ValidCount())
	}
}
