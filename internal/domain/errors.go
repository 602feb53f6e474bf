package domain

import "errors"

// Failure kinds surfaced by the services. Callers map these to transport
// status codes with errors.Is; messages carry the human-readable detail.
var (
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidState         = errors.New("invalid state")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrAvailabilityConflict = errors.New("property not available for the requested dates")
	ErrSelfBooking          = errors.New("hosts cannot book their own property")
	ErrDuplicatePayment     = errors.New("an active payment already exists for this booking")
	ErrDuplicateReview      = errors.New("review already exists for this booking")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)
