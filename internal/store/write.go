package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx is a scoped unit of work handle passed to Atomic callbacks.
// All writes performed through a Tx are discarded together if the
// enclosing Atomic scope returns an error.
type Tx struct {
	tx *sql.Tx
}

// InsertUser inserts a user row inside the unit of work and returns the
// assigned row id. The write is visible to other observers only if the
// enclosing scope commits.
func (t *Tx) InsertUser(ctx context.Context, name string) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO users (name)
		VALUES (?)
	`, name)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert user: last insert id: %w", err)
	}
	return id, nil
}

// CountUsersInScope returns the number of user rows visible inside the
// unit of work, including uncommitted writes from this scope. Used to
// observe the pre-commit state the notifier sees.
func (t *Tx) CountUsersInScope(ctx context.Context) (int, error) {
	var count int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users in scope: %w", err)
	}
	return count, nil
}
