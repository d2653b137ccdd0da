// Package common contains shared constants and sentinel errors used across
// ContactDesk components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Transport-level errors: server unreachable, timeout, 5xx.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors: bad credentials or a missing/invalid token.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")

	// Reconciliation invariant violations. Both are defensive: the
	// conflicting operation is dropped and the contact list left unchanged.
	ErrDuplicateID     = errors.New("duplicate contact id")
	ErrStaleMutation   = errors.New("stale mutation")
	ErrAlreadyExists   = errors.New("already exists")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrAlreadyLoggedIn = errors.New("already logged in")
)
