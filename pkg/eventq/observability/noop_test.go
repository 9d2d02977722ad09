package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

// TestNoopMetrics verifies the no-op recorder never panics.
func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	assert.NotPanics(t, func() {
		m.RecordEnqueue(context.Background(), "order.created", 1)
		m.RecordProcessed(context.Background(), "order.created", time.Millisecond, true)
	})
}

// TestNoopSpanManager verifies the no-op span manager never panics and
// leaves the context unchanged.
func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	outCtx, span := m.StartConsumeSpan(ctx, "consumer")
	assert.Equal(t, ctx, outCtx)

	outCtx, eventSpan := m.StartEventSpan(ctx, "evt-1", "order.created")
	assert.Equal(t, ctx, outCtx)

	assert.NotPanics(t, func() {
		m.AddSpanEvent(ctx, "noop", attribute.String("k", "v"))
		m.EndSpanWithError(span, errors.New("ignored"))
		m.EndSpanWithError(eventSpan, nil)
	})
}
