// Package common defines shared sentinel errors used across client and
// server layers of AuthGate. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("User already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// Configuration errors (fatal at startup, never per-request).
	ErrMissingSecret = errors.New("missing signing secret")

	// Token lifecycle errors. Both surface as unauthorized to callers,
	// but the kinds stay distinct for logging.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Avatar storage errors.
	ErrInvalidStorageKey = errors.New("invalid storage key")
)
