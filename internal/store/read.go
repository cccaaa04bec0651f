package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is a persisted user row.
type User struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ErrUserNotFound is returned by UserByName when no row matches.
var ErrUserNotFound = errors.New("user not found")

// CountUsers returns the number of committed user rows.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// UserByName returns the committed user row with the given name.
// Returns ErrUserNotFound if no such row exists.
func (s *Store) UserByName(ctx context.Context, name string) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM users
		WHERE name = ?
		ORDER BY id ASC
		LIMIT 1
	`, name)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("user by name: %w", err)
	}
	return u, nil
}

// ListUsers returns all committed user rows.
// Results are ordered deterministically: ORDER BY id ASC.
//
// Returns an empty slice (not nil) if no rows exist.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	// Return empty slice instead of nil
	if users == nil {
		users = []User{}
	}

	return users, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanUser.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser scans a user row in SELECT id, name, created_at column order.
func scanUser(r rowScanner) (User, error) {
	var (
		u         User
		createdAt string
	)
	if err := r.Scan(&u.ID, &u.Name, &createdAt); err != nil {
		return User{}, err
	}

	// created_at is stored as an RFC 3339 UTC string by the schema default.
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return User{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	u.CreatedAt = ts

	return u, nil
}
