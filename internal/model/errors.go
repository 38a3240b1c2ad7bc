package model

import "errors"

var (
	// Lifecycle errors
	ErrNotFound            = errors.New("entity not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvariantViolation  = errors.New("audit invariant violation")
	ErrNotEligibleForPurge = errors.New("entity not eligible for purge")
	ErrMissingActor        = errors.New("missing actor identity")

	// I/O classification. Transient failures are retriable (timeouts, network,
	// upstream 5xx); permanent ones are not.
	ErrTransient = errors.New("transient failure")
	ErrPermanent = errors.New("permanent failure")

	// Auth related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
