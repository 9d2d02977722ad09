package eventq

import "errors"

// Sentinel errors for queue operations.
var (
	// ErrNilEvent indicates Enqueue was called with a nil event.
	ErrNilEvent = errors.New("event cannot be nil")

	// ErrQueueClosed indicates Enqueue was called after Close.
	ErrQueueClosed = errors.New("queue is closed")
)
