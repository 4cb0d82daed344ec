package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the query filters.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an insert violates the unique
	// email constraint.
	ErrDuplicateEmail = errors.New("email already in use")
)
