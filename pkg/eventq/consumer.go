package eventq

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/randalmurphal/eventq/pkg/eventq/event"
	"github.com/randalmurphal/eventq/pkg/eventq/journal"
	"github.com/randalmurphal/eventq/pkg/eventq/observability"
	"github.com/randalmurphal/eventq/pkg/eventq/result"
)

// Handler processes one dequeued event and reports its outcome.
//
// Expected failures travel back as a Failure result, never as a panic.
// The queue does not interpret the result; the consumer loop logs
// failures and records them to the journal when one is configured.
type Handler func(ctx context.Context, evt event.Event) result.Result[any]

// Consumer drives a single Dequeue iteration against a queue, invoking
// a handler per event. Construct with NewConsumer and start with Run.
type Consumer struct {
	queue   *Queue
	handler Handler
	name    string

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	journal journal.Store

	processed atomic.Int64
	failed    atomic.Int64
}

// NewConsumer creates a consumer for the given queue and handler.
// Both are required; a nil handler panics since the loop would have
// nothing to do with delivered events.
func NewConsumer(q *Queue, handler Handler, opts ...ConsumerOption) *Consumer {
	if q == nil {
		panic("eventq: queue is required")
	}
	if handler == nil {
		panic("eventq: handler is required")
	}

	c := &Consumer{
		queue:   q,
		handler: handler,
		name:    "consumer",
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = observability.EnrichLogger(c.logger, c.name)
	return c
}

// Run drives the pull loop until the queue is closed and drained, or
// ctx is cancelled. It returns ctx.Err() on cancellation and nil on a
// clean close. Run must not be called concurrently: the queue is
// point-to-point and a second loop would race for items.
func (c *Consumer) Run(ctx context.Context) error {
	runCtx, span := c.spans.StartConsumeSpan(ctx, c.name)
	observability.LogConsumerStart(c.logger)

	for evt := range c.queue.Dequeue(runCtx) {
		c.processOne(runCtx, evt)
	}

	err := ctx.Err()
	c.spans.EndSpanWithError(span, err)
	observability.LogConsumerStop(c.logger, c.processed.Load(), c.failed.Load())
	return err
}

// processOne invokes the handler for a single event and records the
// outcome. Handler results are the consumer's concern alone: a Failure
// is logged and journaled, never retried here.
func (c *Consumer) processOne(ctx context.Context, evt event.Event) {
	evtCtx, span := c.spans.StartEventSpan(ctx, evt.ID(), evt.Type())
	start := time.Now()

	res := c.handler(evtCtx, evt)

	duration := time.Since(start)
	c.processed.Add(1)

	if res.IsFailure() {
		ferr := res.Err()
		c.failed.Add(1)
		c.metrics.RecordProcessed(evtCtx, evt.Type(), duration, true)
		observability.LogEventFailed(c.logger, evt.ID(), evt.Type(), ferr.Code, ferr.Message)
		c.recordFailure(evtCtx, evt, ferr)
		c.spans.EndSpanWithError(span, ferr)
		return
	}

	c.metrics.RecordProcessed(evtCtx, evt.Type(), duration, false)
	observability.LogEventProcessed(c.logger, evt.ID(), evt.Type(), float64(duration.Milliseconds()))
	c.spans.EndSpanWithError(span, nil)
}

// recordFailure writes a failed event to the journal, if configured.
func (c *Consumer) recordFailure(ctx context.Context, evt event.Event, ferr result.Error) {
	if c.journal == nil {
		return
	}
	if err := c.journal.Record(ctx, journal.NewFailedEvent(evt, ferr)); err != nil {
		observability.LogJournalError(c.logger, evt.ID(), err)
	}
}

// Processed returns the number of events the handler has been invoked for.
func (c *Consumer) Processed() int64 {
	return c.processed.Load()
}

// Failed returns the number of events whose handler returned a failure.
func (c *Consumer) Failed() int64 {
	return c.failed.Load()
}
