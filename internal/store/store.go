// Package store holds per-user learning state. The default backend is an
// in-memory map that lives and dies with the process; a SQLite backend is
// available when state should survive restarts.
package store

import "context"

// UserStore is the key-value mapping from user identifier to user record.
// Constructed at startup and passed explicitly to the components that need
// it. Implementations must be safe for use from the sequential
// request-handling path; no atomicity across Get/Put is promised.
type UserStore interface {
	// Get returns the record for id. The boolean reports whether a record
	// exists; a missing record is not an error.
	Get(ctx context.Context, id string) (UserRecord, bool, error)

	// Put stores the record under id, replacing any previous value.
	Put(ctx context.Context, id string, record UserRecord) error
}
