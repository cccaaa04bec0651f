// Package store provides SQLite-backed persistence for users.
//
// The store exposes an explicit scoped unit of work (Atomic) so callers
// control the commit/rollback boundary. Row writes performed inside a unit
// of work are discarded in full when the scope returns an error; anything
// that happened inline during the scope (logging, hook side effects) is not.
package store
