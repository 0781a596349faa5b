package service

import (
	"errors"
	"fmt"
)

var (
	ErrBillNotFound = errors.New("bill not found in local collection")

	// ErrMutationInFlight rejects a second mutation on the same id+field
	// before the first settles. Reject rather than queue: queued intent
	// goes stale behind an unsettled write.
	ErrMutationInFlight = errors.New("a mutation for this bill field is already in flight")

	// ErrUnstableBillId refuses mutation correlation for bills whose id
	// came from the random fallback derivation.
	ErrUnstableBillId = errors.New("bill id is unstable and cannot be correlated upstream")
)

// MutationError wraps a rejected optimistic mutation. By the time the
// caller sees it the local value has already been rolled back.
type MutationError struct {
	BillId string
	Field  string
	Cause  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to confirm %s mutation for bill %s: %v", e.Field, e.BillId, e.Cause)
}

func (e *MutationError) Unwrap() error {
	return e.Cause
}

// FetchInFlightError means a fetch of the same class is already running.
type FetchInFlightError struct {
	Class string
}

func (e *FetchInFlightError) Error() string {
	return fmt.Sprintf("a %s fetch is already in progress", e.Class)
}
