package models

// TrendClass classifies the earnings trajectory.
type TrendClass string

const (
	TrendStrong    TrendClass = "strong"
	TrendModerate  TrendClass = "moderate"
	TrendFlat      TrendClass = "flat"
	TrendDeclining TrendClass = "declining"
)

// SectorAverages holds baseline ratios for one sector. All fields are plain
// floats: a baseline row either exists in full or not at all.
type SectorAverages struct {
	PERatio        float64 `json:"pe_ratio"`
	ReturnOnEquity float64 `json:"return_on_equity"`
	ProfitMargin   float64 `json:"profit_margin"`
	DebtToEquity   float64 `json:"debt_to_equity"`
}

// Delta is a metric measured against its sector average. Ratio is
// metric/average; Valid is false when either side was unavailable.
type Delta struct {
	Ratio float64 `json:"ratio"`
	Valid bool    `json:"valid"`
}

// ContextualSignals is the optional Phase-2 enrichment. Each signal carries
// its own availability flag; the whole struct is absent when Phase 2 was
// skipped.
type ContextualSignals struct {
	Sector         string     `json:"sector"`
	PEVsSector     Delta      `json:"pe_vs_sector"`
	ROEVsSector    Delta      `json:"roe_vs_sector"`
	MarginVsSector Delta      `json:"margin_vs_sector"`
	EarningsTrend  TrendClass `json:"earnings_trend,omitempty"`
	TrendValid     bool       `json:"trend_valid"`
	RiskAssessment string     `json:"risk_assessment,omitempty"`
	GrowthProfile  string     `json:"growth_profile,omitempty"`
	Bullets        []string   `json:"bullets,omitempty"`
}
