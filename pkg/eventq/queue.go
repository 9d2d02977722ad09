package eventq

import (
	"context"
	"iter"
	"log/slog"
	"sync"

	"github.com/randalmurphal/eventq/pkg/eventq/event"
	"github.com/randalmurphal/eventq/pkg/eventq/observability"
)

// Queue is an unbounded, asynchronous FIFO queue for events.
//
// Any number of goroutines may call Enqueue concurrently; a single
// consumer drains the queue through Dequeue. The queue owns all
// internal synchronization - callers never lock.
type Queue struct {
	mu     sync.Mutex
	items  []event.Event
	head   int
	closed bool

	// notify wakes a waiting consumer after an enqueue; done wakes it on Close.
	notify chan struct{}
	done   chan struct{}

	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// NewQueue creates an open, empty queue.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue places evt at the tail of the queue, making it immediately
// available to an active Dequeue iteration.
//
// The store is unbounded, so Enqueue never blocks waiting for the
// consumer and never rejects events for capacity reasons. It fails only
// for a nil event, a closed queue, or a cancelled context; on
// cancellation the event is not enqueued and the queue is untouched.
func (q *Queue) Enqueue(ctx context.Context, evt event.Event) error {
	if evt == nil {
		return ErrNilEvent
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.items = append(q.items, evt)
	depth := len(q.items) - q.head
	q.mu.Unlock()

	// Non-blocking wakeup: a pending signal already guarantees the
	// consumer will re-check the store.
	select {
	case q.notify <- struct{}{}:
	default:
	}

	q.metrics.RecordEnqueue(ctx, evt.Type(), depth)
	observability.LogEventEnqueued(q.logger, evt.ID(), evt.Type(), depth)
	return nil
}

// Dequeue returns a lazy sequence over the queue's events in enqueue
// order. Iteration suspends between the end of the buffered backlog and
// the next enqueue, and ends when the queue is closed (after draining
// buffered events) or ctx is cancelled (immediately - undelivered
// events stay buffered for a fresh iteration).
//
// Only one iteration may be active at a time. A second concurrent
// iterator races the first for items and is outside the contract.
func (q *Queue) Dequeue(ctx context.Context) iter.Seq[event.Event] {
	return func(yield func(event.Event) bool) {
		for {
			evt, ok := q.next(ctx)
			if !ok {
				return
			}
			if !yield(evt) {
				return
			}
		}
	}
}

// next pops the head event, blocking until one is available or the
// iteration should end.
func (q *Queue) next(ctx context.Context) (event.Event, bool) {
	for {
		// Cancellation ends the iteration before the backlog does:
		// undelivered events stay buffered.
		select {
		case <-ctx.Done():
			return nil, false
		default:
		}

		q.mu.Lock()
		if q.head < len(q.items) {
			evt := q.items[q.head]
			q.items[q.head] = nil // release for GC
			q.head++
			q.compactLocked()
			q.mu.Unlock()
			return evt, true
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, false
		}

		select {
		case <-q.notify:
		case <-q.done:
		case <-ctx.Done():
			return nil, false
		}
	}
}

// compactLocked reclaims the consumed prefix once it dominates the
// backing slice. Caller must hold q.mu.
func (q *Queue) compactLocked() {
	if q.head < 64 || q.head*2 < len(q.items) {
		return
	}
	n := copy(q.items, q.items[q.head:])
	clear(q.items[n:])
	q.items = q.items[:n]
	q.head = 0
}

// Len returns the number of buffered, undelivered events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Close transitions the queue from Open to Closed. Further enqueues are
// rejected with ErrQueueClosed; an active Dequeue iteration drains the
// remaining buffered events and then ends. Close is idempotent, and
// there is no way back to Open.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	close(q.done)
	observability.LogQueueClosed(q.logger)
}
