// Package stats records notification and request-outcome events.
//
// Recording is deliberately outside the request's transactional scope:
// events recorded here survive a rollback, which is exactly the behavior
// the service demonstrates. Callers treat recording as best-effort and
// never fail a request on a stats error.
package stats

import (
	"context"
	"time"
)

// Event kinds recorded by the service.
const (
	// KindNotified is recorded when the creation notifier fires.
	KindNotified = "notified"

	// KindCommitted is recorded when a request's unit of work commits.
	KindCommitted = "committed"

	// KindRolledBack is recorded when a request's unit of work rolls back.
	KindRolledBack = "rolled_back"
)

// Event is a single recorded occurrence.
type Event struct {
	// Kind is one of the Kind* constants.
	Kind string

	// Request is the execution-context identifier of the originating request.
	Request string

	// UserName is the name of the user involved, if any.
	UserName string

	// At is the event time. Zero means "now" for recorder implementations
	// that care about time.
	At time.Time
}

// Recorder is the persistence strategy for events.
//
// Implementations may store in memory, Redis, etc. Callers must treat
// errors as best-effort and not fail the surrounding request.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}
