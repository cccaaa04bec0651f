package dispatch

import (
	"context"
	"fmt"
	"log/slog"
)

// Hook is a callback invoked synchronously when an entity is created.
//
// Hooks run inline in the dispatching goroutine. A hook that blocks
// blocks its caller; a hook that returns an error aborts the caller's
// enclosing transactional scope.
type Hook func(ctx context.Context, ev UserCreated) error

// registration pairs a hook with its name for logging and validation.
type registration struct {
	name string
	hook Hook
}

// Registry maps entity kinds to ordered lists of hooks.
//
// Hooks fire in registration order. The order never changes after
// registration, so repeated creations observe the same hook sequence.
//
// Thread-safety model: Register is expected to be called during setup,
// before any Dispatch. Dispatch itself is safe from multiple goroutines
// because registration lists are never mutated afterwards.
type Registry struct {
	clock  *Clock
	logger *slog.Logger
	hooks  map[Kind][]registration
}

// NewRegistry creates an empty registry with its own logical clock.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		clock:  NewClock(),
		logger: logger,
		hooks:  make(map[Kind][]registration),
	}
}

// Register appends a named hook to the kind's firing list.
//
// Names must be unique per kind; a duplicate name is a registration error.
// Registration order determines firing order.
func (r *Registry) Register(kind Kind, name string, hook Hook) error {
	if name == "" {
		return fmt.Errorf("register hook for %s: name is required", kind)
	}
	if hook == nil {
		return fmt.Errorf("register hook %s for %s: hook is nil", name, kind)
	}

	for _, reg := range r.hooks[kind] {
		if reg.name == name {
			return fmt.Errorf("register hook for %s: duplicate hook name: %s", kind, name)
		}
	}

	r.hooks[kind] = append(r.hooks[kind], registration{name: name, hook: hook})
	return nil
}

// MustRegister is Register but panics on error.
// Intended for setup code where a bad registration is a programming error.
func (r *Registry) MustRegister(kind Kind, name string, hook Hook) {
	if err := r.Register(kind, name, hook); err != nil {
		panic(err)
	}
}

// Dispatch invokes every hook registered for the kind, in order, inline.
//
// The event is stamped with the next logical clock value before any hook
// runs. Dispatch returns only after every hook has returned; a hook's
// blocking delay therefore blocks the caller for its full duration.
//
// The first hook error stops dispatch and is returned wrapped with the
// hook's name. Because creation code calls Dispatch inside its unit of
// work, a hook error aborts that scope.
func (r *Registry) Dispatch(ctx context.Context, kind Kind, ev UserCreated) error {
	ev.Seq = r.clock.Next()

	regs := r.hooks[kind]
	if len(regs) == 0 {
		return nil
	}

	for _, reg := range regs {
		r.logger.Debug("firing hook",
			"kind", string(kind),
			"hook", reg.name,
			"request", ev.Request,
			"seq", ev.Seq,
		)
		if err := reg.hook(ctx, ev); err != nil {
			return fmt.Errorf("hook %s: %w", reg.name, err)
		}
	}

	return nil
}

// Hooks returns the registered hook names for a kind, in firing order.
// Used for testing and introspection.
func (r *Registry) Hooks(kind Kind) []string {
	regs := r.hooks[kind]
	names := make([]string, len(regs))
	for i, reg := range regs {
		names[i] = reg.name
	}
	return names
}

// Clock returns the registry's logical clock.
func (r *Registry) Clock() *Clock {
	return r.clock
}
