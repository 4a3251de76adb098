package domain

import "fmt"

// ValidationError reports malformed or missing input. The caller can fix
// the request and retry; the engine never retries on its behalf.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// ConflictError reports that a state invariant would be violated: a second
// agreement on a campaign, a duplicate rating, re-promoting an inquiry, or
// acting on an already-resolved entity. The caller should re-fetch state.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Reason }

// NotFoundError reports a missing entity reference.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// OwnershipError reports that the acting user is not the authorized party
// for the attempted transition.
type OwnershipError struct {
	Reason string
}

func (e *OwnershipError) Error() string { return "not allowed: " + e.Reason }

// UpstreamError reports a failed call to an external collaborator, currently
// only the geocoder. Discovery swallows it into degraded mode; it is kept as
// a distinct type so that path is explicit.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("upstream %s: %v", e.Op, e.Err) }

func (e *UpstreamError) Unwrap() error { return e.Err }

// StoreError wraps a persistence failure. Retryable hints that the caller
// may re-run the operation; the engine itself never does.
type StoreError struct {
	Err       error
	Retryable bool
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %v", e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }
