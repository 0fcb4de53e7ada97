package repository

import (
	"context"

	"InvestLens/internal/domain/models"
)

// Metrics records operational measurements for the pipeline.
type Metrics interface {
	RecordAnalysis(recommendation, confidence string)
	RecordProviderCall(provider, outcome string)
	RecordError(kind string)
	RecordScore(ticker string, score float64)
	RecordPhaseLatency(phase string, seconds float64)
}

// EventPublisher emits completed analysis results to downstream consumers.
// Publishing is best-effort: callers must not fail the request on error.
type EventPublisher interface {
	PublishAnalysis(ctx context.Context, result *models.AnalysisResult) error
	Close() error
}
