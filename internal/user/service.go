// Package user implements the user-creation scenario: a scoped unit of
// work around one insert, synchronous hook dispatch at insert time, and a
// commit-or-rollback decision taken only after every hook has returned.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"txsignals/internal/dispatch"
	"txsignals/internal/stats"
	"txsignals/internal/store"
)

// Response bodies returned to callers. Fixed text: the simulated failure
// is never surfaced raw.
const (
	ResponseSuccess = "User created successfully!"
	ResponseFailure = "Transaction failed, user was not created!"
)

// NameSuffix is appended to the request token to form the user name.
const NameSuffix = "1"

// ErrSimulatedFailure is the deliberate failure raised inside the unit of
// work when a caller asks for a rollback demonstration.
var ErrSimulatedFailure = errors.New("simulating an error to roll back the transaction")

// User is the created entity as seen by callers.
type User struct {
	ID   int64
	Name string
}

// Service runs the creation scenario.
type Service struct {
	store    *store.Store
	registry *dispatch.Registry
	logger   *slog.Logger
	stats    stats.Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithStats attaches a best-effort outcome recorder.
func WithStats(r stats.Recorder) Option {
	return func(s *Service) { s.stats = r }
}

// NewService creates a Service around a store and a hook registry.
func NewService(st *store.Store, registry *dispatch.Registry, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:    st,
		registry: registry,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create runs one creation request in the caller's goroutine.
//
// Inside a single unit of work it inserts a user named after the request
// token, dispatches the UserCreated hooks inline (the notifier's delay
// blocks right here, before the commit/rollback decision), and then either
// raises the simulated failure or falls through to commit.
//
// The returned response text is always one of ResponseSuccess or
// ResponseFailure. The error return carries the underlying cause for
// logging and tests; HTTP callers send only the response text.
func (s *Service) Create(ctx context.Context, token string, simulateFailure bool) (User, string, error) {
	// Log the execution-context identity before any work, mirroring the
	// identity the notifier logs mid-scope.
	s.logger.Info("handler running", "request", token)

	var created User
	err := s.store.Atomic(ctx, func(tx *store.Tx) error {
		s.logger.Info("starting user creation process", "request", token)

		// Names are stored NFC-normalized so equal-looking names compare equal.
		name := norm.NFC.String(token + NameSuffix)

		id, err := tx.InsertUser(ctx, name)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		created = User{ID: id, Name: name}

		// Synchronous dispatch: every hook, including the notifier's full
		// delay, runs before this function continues.
		if err := s.registry.Dispatch(ctx, dispatch.KindUser, dispatch.UserCreated{
			UserID:  id,
			Name:    name,
			Request: token,
		}); err != nil {
			return fmt.Errorf("dispatch user created: %w", err)
		}

		s.logger.Info("user creation finished, before committing transaction", "request", token)

		if simulateFailure {
			return ErrSimulatedFailure
		}
		return nil
	})

	if err != nil {
		s.logger.Info("exception occurred", "request", token, "error", err)
		s.recordOutcome(ctx, stats.KindRolledBack, token, created.Name)
		return User{}, ResponseFailure, err
	}

	s.recordOutcome(ctx, stats.KindCommitted, token, created.Name)
	return created, ResponseSuccess, nil
}

// recordOutcome records the request outcome, best-effort.
func (s *Service) recordOutcome(ctx context.Context, kind, token, name string) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Record(ctx, stats.Event{Kind: kind, Request: token, UserName: name}); err != nil {
		s.logger.Warn("outcome recording failed", "error", err)
	}
}
