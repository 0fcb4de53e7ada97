package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analysesTotal  *prometheus.CounterVec
	providerCalls  *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastScore      *prometheus.GaugeVec
	phaseLatency   *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investlens_analyses_total",
				Help: "Total completed analyses by recommendation and confidence",
			},
			[]string{"recommendation", "confidence"},
		),
		providerCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investlens_provider_calls_total",
				Help: "Market data provider calls by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investlens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"kind"},
		),
		lastScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "investlens_last_score",
				Help: "Last computed investment score for a ticker",
			},
			[]string{"ticker"},
		),
		phaseLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "investlens_phase_duration_seconds",
				Help:    "Duration of pipeline phases in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
	}
}

// RecordAnalysis records a completed analysis.
func (r *Recorder) RecordAnalysis(recommendation, confidence string) {
	r.analysesTotal.WithLabelValues(recommendation, confidence).Inc()
}

// RecordProviderCall records a market data provider call outcome.
func (r *Recorder) RecordProviderCall(provider, outcome string) {
	r.providerCalls.WithLabelValues(provider, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordScore records the last score for a ticker.
func (r *Recorder) RecordScore(ticker string, score float64) {
	r.lastScore.WithLabelValues(ticker).Set(score)
}

// RecordPhaseLatency records a pipeline phase duration in seconds.
func (r *Recorder) RecordPhaseLatency(phase string, seconds float64) {
	r.phaseLatency.WithLabelValues(phase).Observe(seconds)
}
