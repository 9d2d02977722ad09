/*
Package eventq provides an in-process, unbounded, multi-producer
single-consumer event queue with a pull-based consumer loop.

# Overview

eventq decouples producers raising domain events from the loop that
processes them. Producers call Enqueue from any goroutine; a single
consumer drains the queue in FIFO order through a lazy iterator.
Handlers report per-event outcomes as result.Result values instead of
errors, reserving panics for genuine programmer mistakes.

The library is deliberately small:
  - Queue: unbounded FIFO, safe for concurrent producers
  - Consumer: pull loop with structured logging, metrics, and tracing
  - result.Result: success-or-failure outcome wrapper
  - journal.Store: optional record of events whose handler failed

# Basic Usage

Create a queue, start a consumer, and enqueue events:

	q := eventq.NewQueue()

	handler := func(ctx context.Context, evt event.Event) result.Result[any] {
	    if err := process(evt); err != nil {
	        return result.Failuref[any]("process %s: %v", evt.ID(), err)
	    }
	    return result.Success[any](nil)
	}

	consumer := eventq.NewConsumer(q, handler)
	go consumer.Run(ctx)

	q.Enqueue(ctx, event.NewAny("order.created", "orders", payload))

# Delivery Semantics

Enqueue never blocks for backpressure: the backing store is unbounded,
so the only way an Enqueue fails is a nil event, a closed queue, or a
cancelled context. Delivery order equals enqueue completion order, and
each event is delivered exactly once to the active iteration.

Cancelling the context passed to Dequeue ends that iteration promptly;
undelivered events stay buffered and a fresh iteration sees them.
Closing the queue rejects further enqueues but lets the consumer drain
what is already buffered before its iteration ends.

Point-to-point only: a second concurrent Dequeue iteration would race
the first for items and is outside the contract.
*/
package eventq
