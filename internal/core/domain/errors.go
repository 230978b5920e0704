package domain

import (
	"errors"
	"fmt"
)

// Category errors. Specific errors below wrap exactly one category so the
// HTTP layer can classify any failure with errors.Is.
var (
	ErrValidation   = errors.New("validation")
	ErrState        = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrInvalidCapacity = fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	ErrInvalidMinutes  = fmt.Errorf("%w: estimated service time must be at least 1 minute", ErrValidation)
	ErrInvalidHours    = fmt.Errorf("%w: service hours must satisfy 0 <= start < end <= 23", ErrValidation)
	ErrInvalidRole     = fmt.Errorf("%w: unknown role", ErrValidation)
	ErrServingBackward = fmt.Errorf("%w: serving number cannot move backward", ErrValidation)

	ErrServiceNotFound = fmt.Errorf("%w: service", ErrNotFound)
	ErrQueueNotFound   = fmt.Errorf("%w: queue", ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("%w: user profile", ErrNotFound)

	ErrQueueNotActive   = fmt.Errorf("%w: queue is not active", ErrState)
	ErrQueueNotPaused   = fmt.Errorf("%w: queue is not paused", ErrState)
	ErrQueueStopped     = fmt.Errorf("%w: queue is stopped", ErrState)
	ErrQueueRunning     = fmt.Errorf("%w: service already has a running queue", ErrState)
	ErrServiceNotClosed = fmt.Errorf("%w: can only delete closed services", ErrState)
	ErrOutsideHours     = fmt.Errorf("%w: service is outside operating hours", ErrState)
	ErrPastClosingTime  = fmt.Errorf("%w: estimated wait extends past closing time", ErrState)

	ErrNotOwner         = fmt.Errorf("%w: caller is not the service owner", ErrUnauthorized)
	ErrNotBusinessOwner = fmt.Errorf("%w: businessOwner role required", ErrUnauthorized)
	ErrNotCustomer      = fmt.Errorf("%w: caller is not a customer", ErrUnauthorized)
	ErrNotAdmin         = fmt.Errorf("%w: admin role required", ErrUnauthorized)
	ErrNotSelf          = fmt.Errorf("%w: callers may only act on their own membership", ErrUnauthorized)
)

// Membership errors get their own identities in the taxonomy; the HTTP
// layer reports them as conflicts like the state errors.
var (
	ErrAlreadyInQueue = errors.New("customer already in queue")
	ErrNotInQueue     = errors.New("customer not in queue")
)
