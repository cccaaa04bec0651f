// Package notify implements the creation notifier hook.
//
// The notifier demonstrates that post-creation hooks run synchronously in
// the caller's execution context: it blocks the request for a configured
// delay between its log lines, and its side effects happen whether or not
// the enclosing transaction later commits.
package notify

import (
	"context"
	"log/slog"
	"time"

	"txsignals/internal/dispatch"
	"txsignals/internal/stats"
)

// DefaultDelay is the demonstration delay between the creation log line
// and the completion log line.
const DefaultDelay = 5 * time.Second

// Sleeper blocks for a duration.
// Implemented by RealSleeper (production) and recording fakes (tests).
type Sleeper interface {
	Sleep(d time.Duration)
}

// RealSleeper sleeps with time.Sleep. There is no cancellation: once the
// delay starts it runs to completion, matching the blocking contract the
// notifier demonstrates.
type RealSleeper struct{}

// Sleep blocks the calling goroutine for d.
func (RealSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}

// CreationNotifier is the post-creation hook for user records.
type CreationNotifier struct {
	logger  *slog.Logger
	sleeper Sleeper
	delay   time.Duration
	stats   stats.Recorder
}

// Option configures a CreationNotifier.
type Option func(*CreationNotifier)

// WithDelay overrides the blocking delay (default DefaultDelay).
func WithDelay(d time.Duration) Option {
	return func(n *CreationNotifier) { n.delay = d }
}

// WithSleeper overrides the sleeper. Tests use a recording fake so the
// full sequence can be observed without real waiting.
func WithSleeper(s Sleeper) Option {
	return func(n *CreationNotifier) { n.sleeper = s }
}

// WithStats attaches a best-effort stats recorder.
func WithStats(r stats.Recorder) Option {
	return func(n *CreationNotifier) { n.stats = r }
}

// New creates a CreationNotifier with the default delay and real sleeping.
func New(logger *slog.Logger, opts ...Option) *CreationNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	n := &CreationNotifier{
		logger:  logger,
		sleeper: RealSleeper{},
		delay:   DefaultDelay,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Delay returns the configured blocking delay.
func (n *CreationNotifier) Delay() time.Duration {
	return n.delay
}

// Notify handles a UserCreated event.
//
// In order: log the execution-context identity, log the creation, block
// for the configured delay, log completion. The whole sequence runs before
// control returns to the creating code, and it runs exactly once per
// creation - a later rollback does not undo any of it.
//
// A stats recording failure is logged and swallowed; it never aborts the
// caller's transaction.
func (n *CreationNotifier) Notify(ctx context.Context, ev dispatch.UserCreated) error {
	n.logger.Info("notifier running in caller's context", "request", ev.Request, "seq", ev.Seq)
	n.logger.Info("user created", "name", ev.Name, "user_id", ev.UserID)

	// Simulate a long-running task. Blocks the request handler.
	n.sleeper.Sleep(n.delay)

	n.logger.Info("notifier done after delay", "delay", n.delay)
	n.logger.Info("notifier completed", "request", ev.Request)

	if n.stats != nil {
		if err := n.stats.Record(ctx, stats.Event{
			Kind:     stats.KindNotified,
			Request:  ev.Request,
			UserName: ev.Name,
		}); err != nil {
			n.logger.Warn("stats recording failed", "error", err)
		}
	}

	return nil
}
