package dispatch

// Kind identifies the entity type an event belongs to.
// Hooks are registered per kind.
type Kind string

// KindUser is the entity kind for user records.
const KindUser Kind = "user"

// UserCreated describes a newly created user record.
//
// The event is emitted at insert time, before the enclosing transaction
// decides to commit or roll back. Hooks must not assume the row will
// still exist once the request completes.
type UserCreated struct {
	// UserID is the row id assigned by the insert.
	UserID int64

	// Name is the user's name as written.
	Name string

	// Request is the execution-context identifier (request token) of the
	// caller. Hooks run in the same execution context, so logging this
	// value demonstrates that no context switch happened.
	Request string

	// Seq is the logical clock stamp assigned at dispatch time.
	Seq int64
}
