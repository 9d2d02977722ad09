package journal

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store implementation.
// Suitable for testing and single-run tooling.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*FailedEvent
	order []string // event IDs in recording order
}

// NewMemoryStore creates a new in-memory journal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*FailedEvent),
	}
}

// Record appends a failed event to the journal.
func (s *MemoryStore) Record(_ context.Context, failed *FailedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[failed.EventID]; !exists {
		s.order = append(s.order, failed.EventID)
	}
	cp := *failed
	s.byID[failed.EventID] = &cp
	return nil
}

// Get retrieves the record for an event ID.
func (s *MemoryStore) Get(_ context.Context, eventID string) (*FailedEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	failed, exists := s.byID[eventID]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *failed
	return &cp, nil
}

// List returns up to limit records in recording order.
func (s *MemoryStore) List(_ context.Context, limit int) ([]*FailedEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}

	records := make([]*FailedEvent, 0, n)
	for _, id := range s.order[:n] {
		cp := *s.byID[id]
		records = append(records, &cp)
	}
	return records, nil
}

// Count returns the number of records.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

// Delete removes the record for an event ID.
func (s *MemoryStore) Delete(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[eventID]; !exists {
		return ErrNotFound
	}
	delete(s.byID, eventID)
	for i, id := range s.order {
		if id == eventID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
