// Package journal records events whose handler reported a failure.
//
// The journal is a consumer-side convention: the queue itself never
// writes to it, and its presence does not make delivery durable. It
// exists so operators can inspect what failed and why after the fact.
//
// Two implementations are provided: MemoryStore for tests and
// single-run tooling, and SQLiteStore for records that should survive
// the process.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/randalmurphal/eventq/pkg/eventq/event"
	"github.com/randalmurphal/eventq/pkg/eventq/result"
)

// Sentinel errors.
var (
	// ErrNotFound indicates no record exists for the requested event ID.
	ErrNotFound = errors.New("failed event not found")

	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("journal store is closed")
)

// FailedEvent is the journal record for one handler failure.
type FailedEvent struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Payload   []byte `json:"payload,omitempty"`

	// Failure details, copied from the handler's result.Error.
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`

	FailedAt time.Time `json:"failed_at"`
}

// NewFailedEvent builds a journal record from an event and the Error
// its handler returned.
func NewFailedEvent(evt event.Event, ferr result.Error) *FailedEvent {
	return &FailedEvent{
		EventID:   evt.ID(),
		EventType: evt.Type(),
		Payload:   evt.DataBytes(),
		Code:      ferr.Code,
		Message:   ferr.Message,
		Details:   ferr.Details,
		FailedAt:  time.Now(),
	}
}

// Store persists and retrieves failed-event records.
type Store interface {
	// Record appends a failed event to the journal.
	Record(ctx context.Context, failed *FailedEvent) error

	// Get retrieves the record for an event ID.
	Get(ctx context.Context, eventID string) (*FailedEvent, error)

	// List returns up to limit records in recording order.
	// A non-positive limit returns all records.
	List(ctx context.Context, limit int) ([]*FailedEvent, error)

	// Count returns the number of records.
	Count(ctx context.Context) (int, error)

	// Delete removes the record for an event ID.
	Delete(ctx context.Context, eventID string) error

	// Close releases the store's resources.
	Close() error
}

// Open creates a Store for the given driver. Supported drivers are
// "memory" and "sqlite"; sqlite requires a path (":memory:" works for
// tests).
func Open(driver, path string) (Store, error) {
	switch driver {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if path == "" {
			return nil, errors.New("sqlite journal requires a path")
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown journal driver: %q", driver)
	}
}
