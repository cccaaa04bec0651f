// Package testutil provides deterministic test doubles shared across packages.
package testutil

import (
	"sync"
	"time"
)

// RecordingSleeper records requested sleep durations without sleeping.
//
// Tests inject it in place of the real sleeper so the notifier's full
// blocking sequence can be asserted without waiting out the delay.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type RecordingSleeper struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

// NewRecordingSleeper creates an empty recording sleeper.
func NewRecordingSleeper() *RecordingSleeper {
	return &RecordingSleeper{}
}

// Sleep records d and returns immediately.
func (s *RecordingSleeper) Sleep(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeps = append(s.sleeps, d)
}

// Sleeps returns a copy of the recorded durations in call order.
func (s *RecordingSleeper) Sleeps() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.sleeps))
	copy(out, s.sleeps)
	return out
}

// Reset clears the recorded durations for test reuse.
func (s *RecordingSleeper) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeps = nil
}
