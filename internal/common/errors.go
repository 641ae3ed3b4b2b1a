// Package common defines shared constants and sentinel errors used across
// client and server layers of shastore. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Validation errors (client input, mapped to 400 at the HTTP boundary).
	ErrUnsupportedAlgorithm = errors.New("invalid hash algorithm, use sha224, sha256, sha384, or sha512")
	ErrDuplicateUsername    = errors.New("username already registered")
	ErrInvalidUsername      = errors.New("username must be between 3 and 50 characters")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters")

	// Auth errors (mapped to 401). One message for unknown user and wrong
	// password, so responses do not reveal which usernames exist.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
)
