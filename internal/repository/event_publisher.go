package repository

import (
	"context"

	"InvestLens/internal/domain/models"
	"InvestLens/pkg/kafka"
)

// KafkaEventPublisher emits completed analyses to a Kafka topic, keyed by
// ticker so per-ticker ordering holds across partitions.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaEventPublisher(producer *kafka.Producer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) PublishAnalysis(ctx context.Context, result *models.AnalysisResult) error {
	return p.producer.Publish(ctx, p.topic, []byte(result.Ticker), result)
}

// PublishMessage sends an arbitrary payload; the log collector uses it for
// aggregated error batches.
func (p *KafkaEventPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}
