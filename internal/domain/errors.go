package domain

import "errors"

// Every operation on the aggregate either fully succeeds or fails with one of
// these errors before any state is mutated. Callers branch with errors.Is.
var (
	// ErrValidation indicates malformed input (empty required text,
	// non-positive numbers). The caller can correct the input and retry.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound indicates a referenced order or checklist item does not
	// exist; the caller should refresh its view of the aggregate.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates a structurally disallowed operation, such as
	// removing a template checklist item. Not retryable with the same input.
	ErrForbidden = errors.New("operation not allowed")

	// ErrInvalidTransition indicates the requested phase is not the
	// immediate successor of the current phase.
	ErrInvalidTransition = errors.New("invalid phase transition")

	// ErrGuardNotSatisfied indicates the phase sequence is correct but a
	// precondition is unmet. The wrapping GuardError names the precondition.
	ErrGuardNotSatisfied = errors.New("transition guard not satisfied")

	// ErrBusy indicates a forward transition was requested while the order
	// is in the wait state; the caller must resume first.
	ErrBusy = errors.New("order is waiting")

	// ErrAlreadyWaiting and ErrNotWaiting signal wait-protocol misuse.
	ErrAlreadyWaiting = errors.New("order is already waiting")
	ErrNotWaiting     = errors.New("order is not waiting")
)

// GuardError carries the human-readable name of the unmet precondition so the
// caller can present an actionable message.
type GuardError struct {
	Reason string
}

func (e *GuardError) Error() string {
	return "transition guard not satisfied: " + e.Reason
}

func (e *GuardError) Unwrap() error {
	return ErrGuardNotSatisfied
}
