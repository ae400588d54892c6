package audit

import (
	"context"
	"sync"
)

// InMemorySink collects records in a slice. Used by tests that need to
// assert which rules fired without standing up a database.
type InMemorySink struct {
	mu      sync.Mutex
	records []Record
}

// NewInMemorySink creates an empty InMemorySink.
func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

// Write appends rec. It never fails.
func (s *InMemorySink) Write(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Records returns a snapshot of every record written so far.
func (s *InMemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
