package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the eventq tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("eventq")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartConsumeSpan starts a span covering an entire consumer loop.
	StartConsumeSpan(ctx context.Context, consumer string) (context.Context, trace.Span)

	// StartEventSpan starts a span for handling a single event.
	// The event span should be a child of the consume span.
	StartEventSpan(ctx context.Context, eventID, eventType string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartConsumeSpan starts a span covering an entire consumer loop.
func (m *otelSpanManager) StartConsumeSpan(ctx context.Context, consumer string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "eventq.consume",
		trace.WithAttributes(
			attribute.String("consumer", consumer),
		),
		trace.WithSpanKind(trace.SpanKindConsumer),
	)
}

// StartEventSpan starts a span for handling a single event.
func (m *otelSpanManager) StartEventSpan(ctx context.Context, eventID, eventType string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "eventq.handle",
		trace.WithAttributes(
			attribute.String("event.id", eventID),
			attribute.String("event.type", eventType),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, recording err when non-nil.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
