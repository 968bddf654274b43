// Package repo implements the persistence layer over database/sql.
// Every query on places and records is scoped by the owning user's id, so
// one tenant can never read or delete another tenant's rows.
package repo

import "errors"

// ErrNotFound is returned when a row does not exist or is owned by another user.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert would collide with an existing row.
var ErrDuplicate = errors.New("already exists")
