package checkin

import "errors"

// Checkin domain errors
var (
	// Invariant violations, recoverable by the caller
	ErrAlreadyCheckedIn = errors.New("you already have an active check-in")
	ErrNoActiveCheckin  = errors.New("you have no active check-in")

	// Authorization
	ErrNotAuthorizedForClient = errors.New("you are not assigned to this client")

	// Transient store failures. ErrStoreTimeout is safe to retry.
	// ErrCommitIndeterminate is not: the write may have committed, so the
	// caller must re-query current state instead of re-submitting.
	ErrStoreTimeout        = errors.New("store did not respond in time")
	ErrCommitIndeterminate = errors.New("commit status unknown, re-query current state")
)
