// Package event defines the typed event envelope carried through the queue.
//
// Events are immutable once created. The queue is payload-agnostic: it moves
// values of the Event interface and never inspects the payload. Use
// BaseEvent[T] for type-safe payload access on the consumer side.
package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the capability marker for anything the queue can carry.
// Implementations must be immutable after construction.
type Event interface {
	// ID returns the unique event identifier.
	ID() string

	// Type returns the event type (e.g., "order.created").
	Type() string

	// Source returns the component that raised the event.
	Source() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time

	// Data returns the opaque payload.
	Data() any

	// DataBytes returns the serialized payload for logging and journaling.
	DataBytes() []byte
}

// Metadata holds the identity fields shared by all events.
type Metadata struct {
	EventID     string    `json:"id"`
	EventType   string    `json:"type"`
	EventSource string    `json:"source"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BaseEvent is a generic Event implementation with a typed payload.
type BaseEvent[T any] struct {
	Meta    Metadata `json:"metadata"`
	Payload T        `json:"payload"`

	// Cached serialization (computed lazily)
	cachedBytes []byte
}

// ID returns the unique event identifier.
func (e *BaseEvent[T]) ID() string {
	return e.Meta.EventID
}

// Type returns the event type.
func (e *BaseEvent[T]) Type() string {
	return e.Meta.EventType
}

// Source returns the component that raised the event.
func (e *BaseEvent[T]) Source() string {
	return e.Meta.EventSource
}

// Timestamp returns when the event occurred.
func (e *BaseEvent[T]) Timestamp() time.Time {
	return e.Meta.OccurredAt
}

// Data returns the payload as an opaque value.
func (e *BaseEvent[T]) Data() any {
	return e.Payload
}

// TypedData returns the strongly-typed payload.
func (e *BaseEvent[T]) TypedData() T {
	return e.Payload
}

// DataBytes returns the JSON-serialized payload, cached after first use.
func (e *BaseEvent[T]) DataBytes() []byte {
	if e.cachedBytes == nil {
		// Best effort - errors are ignored for interface compliance
		e.cachedBytes, _ = json.Marshal(e.Payload)
	}
	return e.cachedBytes
}

// Option configures event creation.
type Option func(*eventConfig)

type eventConfig struct {
	id        string
	timestamp time.Time
}

// WithID sets a specific event ID (default: auto-generated UUID).
func WithID(id string) Option {
	return func(cfg *eventConfig) {
		cfg.id = id
	}
}

// WithTimestamp sets a specific timestamp (default: time.Now()).
func WithTimestamp(t time.Time) Option {
	return func(cfg *eventConfig) {
		cfg.timestamp = t
	}
}

// New creates an event with the given type, source, and payload.
func New[T any](eventType, source string, payload T, opts ...Option) *BaseEvent[T] {
	cfg := &eventConfig{
		id:        uuid.New().String(),
		timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &BaseEvent[T]{
		Meta: Metadata{
			EventID:     cfg.id,
			EventType:   eventType,
			EventSource: source,
			OccurredAt:  cfg.timestamp,
		},
		Payload: payload,
	}
}

// NewAny creates an event with an untyped payload. Convenient when the
// consumer does not need type-safe payload access.
func NewAny(eventType, source string, payload any, opts ...Option) *BaseEvent[any] {
	return New(eventType, source, payload, opts...)
}
