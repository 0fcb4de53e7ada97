package models

// Canonical metric names. The scoring weight table is keyed by struct field,
// not by these strings; they exist for logs, insights, and JSON output.
const (
	MetricPERatio        = "pe_ratio"
	MetricReturnOnEquity = "return_on_equity"
	MetricDebtToEquity   = "debt_to_equity"
	MetricProfitMargin   = "profit_margin"
	MetricEarningsGrowth = "earnings_growth"
)

// CanonicalMetricCount is the size of the fixed canonical metric set.
const CanonicalMetricCount = 5

// Metric is one derived ratio with an explicit validity flag. Derived marks
// values reconstructed from components rather than reported directly.
type Metric struct {
	Value   float64 `json:"value"`
	Valid   bool    `json:"valid"`
	Derived bool    `json:"derived,omitempty"`
}

// MetricSet holds the canonical normalized ratios for one pipeline run.
// Fixed schema: every canonical metric is a field, so the scorer's weight
// table is exhaustively checkable at compile time.
type MetricSet struct {
	PERatio        Metric `json:"pe_ratio"`
	ReturnOnEquity Metric `json:"return_on_equity"`
	DebtToEquity   Metric `json:"debt_to_equity"`
	ProfitMargin   Metric `json:"profit_margin"`
	EarningsGrowth Metric `json:"earnings_growth"`
}

// ValidCount returns how many canonical metrics carry a usable value.
func (m MetricSet) ValidCount() int {
	n := 0
	for _, metric := range []Metric{m.PERatio, m.ReturnOnEquity, m.DebtToEquity, m.ProfitMargin, m.EarningsGrowth} {
		if metric.Valid {
			n++
		}
	}
	return n
}

// Coverage returns the valid fraction of the canonical set in [0,1].
func (m MetricSet) Coverage() float64 {
	return float64(m.ValidCount()) / float64(CanonicalMetricCount)
}
