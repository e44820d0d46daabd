package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrVaultUnavailable indicates the remote vault backend cannot be reached.
	// Browsing degrades to the last cached catalog snapshot.
	ErrVaultUnavailable = errors.New("vault backend unavailable")

	// ErrStaleResponse indicates an async result arrived for an item that is
	// no longer selected. It is discarded silently, never surfaced.
	ErrStaleResponse = errors.New("stale response")
)
