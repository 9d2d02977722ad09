package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records queue and consumer metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEnqueue records a successful enqueue and the resulting backlog depth.
	RecordEnqueue(ctx context.Context, eventType string, depth int)

	// RecordProcessed records one handled event with its duration and outcome.
	RecordProcessed(ctx context.Context, eventType string, duration time.Duration, failed bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	enqueued   metric.Int64Counter
	queueDepth metric.Int64Histogram
	processed  metric.Int64Counter
	failures   metric.Int64Counter
	latency    metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventq")

	enqueued, err := meter.Int64Counter("eventq.events.enqueued",
		metric.WithDescription("Number of events enqueued"),
	)
	if err != nil {
		return nil, err
	}

	queueDepth, err := meter.Int64Histogram("eventq.queue.depth",
		metric.WithDescription("Backlog depth observed at enqueue time"),
	)
	if err != nil {
		return nil, err
	}

	processed, err := meter.Int64Counter("eventq.events.processed",
		metric.WithDescription("Number of events handled by the consumer"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("eventq.events.failures",
		metric.WithDescription("Number of events whose handler returned a failure"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("eventq.processing.latency_ms",
		metric.WithDescription("Event processing latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		enqueued:   enqueued,
		queueDepth: queueDepth,
		processed:  processed,
		failures:   failures,
		latency:    latency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEnqueue records an enqueue.
func (m *otelMetrics) RecordEnqueue(ctx context.Context, eventType string, depth int) {
	attrs := []attribute.KeyValue{
		attribute.String("event_type", eventType),
	}
	m.enqueued.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.queueDepth.Record(ctx, int64(depth))
}

// RecordProcessed records one handled event.
func (m *otelMetrics) RecordProcessed(ctx context.Context, eventType string, duration time.Duration, failed bool) {
	attrs := []attribute.KeyValue{
		attribute.String("event_type", eventType),
	}
	m.processed.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.latency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if failed {
		m.failures.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
