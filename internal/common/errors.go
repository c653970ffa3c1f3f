// Package common defines shared constants and sentinel errors used across
// the LearnPath client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors surfaced inline on the originating form.
	ErrValidation = errors.New("validation error")

	// Token lifecycle errors.
	ErrTokenExpired      = errors.New("token expired")
	ErrNoRefreshToken    = errors.New("no refresh token")
	ErrSessionRevoked    = errors.New("session revoked")
	ErrNotEnrolled       = errors.New("not enrolled")
	ErrServerUnavailable = errors.New("server unavailable")
)
