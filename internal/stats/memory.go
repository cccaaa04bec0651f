package stats

import (
	"context"
	"sync"
)

// Memory is an in-process Recorder.
//
// It keeps a per-kind counter and the full ordered event list, which
// tests use to assert that notifications fired exactly once per request
// regardless of the transaction outcome.
//
// Thread-safety: all methods are safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	counts map[string]int
	events []Event
}

// NewMemory creates an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{counts: make(map[string]int)}
}

// Record appends the event and bumps its kind counter. Never fails.
func (m *Memory) Record(ctx context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[ev.Kind]++
	m.events = append(m.events, ev)
	return nil
}

// Count returns how many events of the given kind have been recorded.
func (m *Memory) Count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[kind]
}

// Events returns a copy of all recorded events in record order.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}
