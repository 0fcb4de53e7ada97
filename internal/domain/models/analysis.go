package models

import (
	"fmt"
	"strings"
	"time"
)

// Recommendation is the discrete investment call derived from the score.
type Recommendation string

const (
	StrongBuy  Recommendation = "Strong Buy"
	Buy        Recommendation = "Buy"
	Hold       Recommendation = "Hold"
	Sell       Recommendation = "Sell"
	StrongSell Recommendation = "Strong Sell"
)

// Confidence reflects how much of the canonical metric set and optional
// context contributed to the score.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// Pipeline phase numbers as recorded in PhasesExecuted.
const (
	PhaseCoreMetrics = 1
	PhaseContext     = 2
	PhaseScoring     = 3
)

// AnalysisResult is the terminal artifact of one pipeline run. Both the JSON
// representation and the human-readable summary derive from this one struct.
type AnalysisResult struct {
	Ticker         string         `json:"ticker"`
	Name           string         `json:"name,omitempty"`
	Price          OptionalFloat  `json:"price"`
	Recommendation Recommendation `json:"recommendation"`
	Score          float64        `json:"score"`
	Confidence     Confidence     `json:"confidence"`
	Insights       []string       `json:"insights"`
	RiskNotes      []string       `json:"risk_notes"`
	PhasesExecuted []int          `json:"phases_executed"`
	ElapsedMs      int64          `json:"elapsed_ms"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// RanPhase reports whether the given phase number was executed.
func (r *AnalysisResult) RanPhase(phase int) bool {
	for _, p := range r.PhasesExecuted {
		if p == phase {
			return true
		}
	}
	return false
}

// Summary renders the result as a human-readable report for chat surfaces.
func (r *AnalysisResult) Summary() string {
	var b strings.Builder

	title := r.Ticker
	if r.Name != "" {
		title = fmt.Sprintf("%s (%s)", r.Name, r.Ticker)
	}
	fmt.Fprintf(&b, "Investment Analysis: %s\n", title)

	if r.Price.Valid {
		fmt.Fprintf(&b, "Price: %.2f\n", r.Price.Value)
	}
	fmt.Fprintf(&b, "Recommendation: %s (score %.1f/100, %s confidence)\n",
		r.Recommendation, r.Score, r.Confidence)

	if len(r.Insights) > 0 {
		b.WriteString("\nKey insights:\n")
		for _, s := range r.Insights {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	if len(r.RiskNotes) > 0 {
		b.WriteString("\nRisks and opportunities:\n")
		for _, s := range r.RiskNotes {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}

	fmt.Fprintf(&b, "\nGenerated in %dms", r.ElapsedMs)
	if !r.RanPhase(PhaseContext) {
		b.WriteString(" (contextual analysis skipped)")
	}
	b.WriteString("\n")

	return b.String()
}
