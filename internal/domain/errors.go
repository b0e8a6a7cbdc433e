package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrMissingInput       = errors.New("missing input")
	ErrDeliveryFailure    = errors.New("delivery failure")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrCodeMismatch       = errors.New("code mismatch")
	ErrChallengeExpired   = errors.New("challenge expired")
	ErrUnauthorizedAdmin  = errors.New("unauthorized admin registration")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSigningFailure     = errors.New("signing failure")

	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
