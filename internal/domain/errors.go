package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStateTransition = errors.New("invalid claim status transition")
	ErrUnauthorized           = errors.New("actor has no role permitting this action")
	ErrCapacityExceeded       = errors.New("resource is at capacity")

	// Internal no-op signal, never returned to API callers.
	ErrDuplicateSuppressed = errors.New("duplicate notification suppressed")
	// Push/email sink failure. Logged, never surfaced to the triggering request.
	ErrDeliveryFailure = errors.New("notification delivery failed")
)
