package eventq

import (
	"log/slog"

	"github.com/randalmurphal/eventq/pkg/eventq/journal"
	"github.com/randalmurphal/eventq/pkg/eventq/observability"
)

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueLogger sets the structured logger for queue operations.
// Without it the queue logs nothing.
func WithQueueLogger(logger *slog.Logger) QueueOption {
	return func(q *Queue) {
		q.logger = logger
	}
}

// WithQueueMetrics sets the metrics recorder for enqueue operations.
// Default: observability.NoopMetrics.
func WithQueueMetrics(metrics observability.MetricsRecorder) QueueOption {
	return func(q *Queue) {
		if metrics != nil {
			q.metrics = metrics
		}
	}
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*Consumer)

// WithName sets the consumer name used in logs and spans.
// Default: "consumer".
func WithName(name string) ConsumerOption {
	return func(c *Consumer) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the structured logger for the consumer loop.
// Without it the consumer logs nothing.
func WithLogger(logger *slog.Logger) ConsumerOption {
	return func(c *Consumer) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder for processed events.
// Default: observability.NoopMetrics.
func WithMetrics(metrics observability.MetricsRecorder) ConsumerOption {
	return func(c *Consumer) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

// WithSpans sets the span manager for tracing the consumer loop.
// Default: observability.NoopSpanManager.
func WithSpans(spans observability.SpanManager) ConsumerOption {
	return func(c *Consumer) {
		if spans != nil {
			c.spans = spans
		}
	}
}

// WithJournal sets the store that records events whose handler returned
// a failure. Without it failures are only logged.
func WithJournal(store journal.Store) ConsumerOption {
	return func(c *Consumer) {
		c.journal = store
	}
}
