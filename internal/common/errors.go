// Package common defines shared constants and sentinel errors used across
// server and client layers of the task manager. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Login errors. Both collapse to ErrorUnableToLogin before leaving the
	// service layer so callers cannot tell unknown e-mails from bad passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrorUnableToLogin    = errors.New("unable to login")

	// Auth errors (invalid, malformed or revoked token).
	ErrInvalidToken = errors.New("invalid token")

	// Request errors.
	ErrInvalidUpdates = errors.New("invalid updates")
	ErrInvalidBody    = errors.New("invalid request body")
)
