package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	ChatTurns         metric.Int64Counter
	TurnDuration      metric.Float64Histogram
	RetrievalDuration metric.Float64Histogram
	ChunksRetrieved   metric.Int64Histogram
	FallbackTier      metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("agency-support-chat")

	chatTurns, err := meter.Int64Counter(
		"chat.turns.total",
		metric.WithDescription("Total chat turns handled"),
	)
	if err != nil {
		return nil, err
	}

	turnDuration, err := meter.Float64Histogram(
		"chat.turn.duration",
		metric.WithDescription("Chat turn duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	retrievalDuration, err := meter.Float64Histogram(
		"retrieval.duration",
		metric.WithDescription("Similarity search duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	chunksRetrieved, err := meter.Int64Histogram(
		"retrieval.chunks.returned",
		metric.WithDescription("Chunks returned per retrieval above the similarity threshold"),
	)
	if err != nil {
		return nil, err
	}

	fallbackTier, err := meter.Int64Counter(
		"respond.tier.used",
		metric.WithDescription("Which response tier produced the answer"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ChatTurns:         chatTurns,
		TurnDuration:      turnDuration,
		RetrievalDuration: retrievalDuration,
		ChunksRetrieved:   chunksRetrieved,
		FallbackTier:      fallbackTier,
	}, nil
}

// RecordTurn records one completed chat turn
func (m *Metrics) RecordTurn(intent string, contextUsed bool, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("chat.intent", intent),
		attribute.Bool("chat.context_used", contextUsed),
	}

	m.ChatTurns.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	m.TurnDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

// RecordRetrieval records similarity search metrics
func (m *Metrics) RecordRetrieval(duration float64, chunks int) {
	m.RetrievalDuration.Record(context.Background(), duration)
	m.ChunksRetrieved.Record(context.Background(), int64(chunks))
}

// RecordTier records which response tier answered
func (m *Metrics) RecordTier(tier string) {
	m.FallbackTier.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("respond.tier", tier)))
}
