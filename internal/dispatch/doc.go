// Package dispatch implements synchronous post-creation hook dispatch.
//
// Hooks are registered per entity kind in declaration order and invoked
// inline, in the caller's goroutine, at the point the creation executes.
// There is no queue, no worker, and no deferral to commit time: a hook
// observes the creation while the enclosing database transaction is still
// open, and its side effects survive a later rollback.
package dispatch
