// Package observability provides structured logging, metrics, and
// distributed tracing for eventq.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds consumer context to a logger.
// Returns a new logger with a consumer field.
func EnrichLogger(logger *slog.Logger, consumer string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("consumer", consumer))
}

// LogConsumerStart logs the start of a consumer loop.
func LogConsumerStart(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Info("consumer starting")
}

// LogConsumerStop logs the end of a consumer loop with its counters.
func LogConsumerStop(logger *slog.Logger, processed, failed int64) {
	if logger == nil {
		return
	}
	logger.Info("consumer stopped",
		slog.Int64("processed", processed),
		slog.Int64("failed", failed),
	)
}

// LogEventEnqueued logs a successful enqueue.
func LogEventEnqueued(logger *slog.Logger, eventID, eventType string, depth int) {
	if logger == nil {
		return
	}
	logger.Debug("event enqueued",
		slog.String("event_id", eventID),
		slog.String("event_type", eventType),
		slog.Int("queue_depth", depth),
	)
}

// LogEventProcessed logs successful event processing.
func LogEventProcessed(logger *slog.Logger, eventID, eventType string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("event processed",
		slog.String("event_id", eventID),
		slog.String("event_type", eventType),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEventFailed logs a handler failure for an event.
func LogEventFailed(logger *slog.Logger, eventID, eventType, code, message string) {
	if logger == nil {
		return
	}
	logger.Error("event processing failed",
		slog.String("event_id", eventID),
		slog.String("event_type", eventType),
		slog.String("code", code),
		slog.String("error", message),
	)
}

// LogJournalError logs a journal write failure (non-fatal).
func LogJournalError(logger *slog.Logger, eventID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal write failed",
		slog.String("event_id", eventID),
		slog.String("error", err.Error()),
	)
}

// LogQueueClosed logs the queue's transition to Closed.
func LogQueueClosed(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Info("queue closed")
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
