package domain

import "errors"

// Error kinds shared by all use cases. Package-level sentinels wrap one of them,
// so callers may match either the precise error or its kind with errors.Is.
var (
	// ErrValidation: missing or malformed input, caller-correctable.
	ErrValidation = errors.New("validation error")

	// ErrIncompleteMinimumBlock: a selection cannot reach the one-hour minimum.
	ErrIncompleteMinimumBlock = errors.New("incomplete minimum block")

	// ErrCapacityExceeded: the slot is already at max occupancy.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNotAuthorized: the caller's role does not permit the transition.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrDuplicatePendingRequest: a pending request of the same type exists.
	ErrDuplicatePendingRequest = errors.New("duplicate pending request")

	// ErrNotFound: the referenced entity no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrDependency: persistence or ledger I/O failure.
	ErrDependency = errors.New("dependency error")
)

// Outcome is the overall result of a multi-step operation.
type Outcome string

const (
	// OutcomeCompleted: every step succeeded.
	OutcomeCompleted Outcome = "completed"
	// OutcomePartialSuccess: bookings were released but at least one refund or item failed.
	OutcomePartialSuccess Outcome = "partial_success"
)
