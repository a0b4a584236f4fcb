package sortstep

import (
	"errors"
	"fmt"
)

// Input errors.
var (
	// ErrMissingValue indicates an empty or non-numeric input.
	ErrMissingValue = errors.New("sortstep: missing numeric value")

	// ErrValueRange indicates an element outside [MinValue, MaxValue].
	ErrValueRange = errors.New("sortstep: value out of range")

	// ErrListFull indicates the list already holds MaxLength elements.
	ErrListFull = errors.New("sortstep: list is full")

	// ErrSizeRange indicates a generate size outside [1, MaxLength].
	ErrSizeRange = errors.New("sortstep: size out of range")

	// ErrBusy indicates the list was edited while a sort is running.
	ErrBusy = errors.New("sortstep: list is locked while a sort is running")
)

// Start errors.
var (
	ErrTooFewElements   = errors.New("sortstep: at least 2 elements are required to sort")
	ErrAlreadyRunning   = errors.New("sortstep: a sort is already running")
	ErrUnknownAlgorithm = errors.New("sortstep: unknown algorithm")
)

// Generator invariant violations. These are programming errors, never user errors.
var (
	ErrIndexOutOfRange = errors.New("sortstep: step index out of range")
	ErrNoProgress      = errors.New("sortstep: generator exceeded its step budget")
	ErrNotSorted       = errors.New("sortstep: final array is not sorted")
	ErrNotPermutation  = errors.New("sortstep: final array is not a permutation of the input")
)

// InputError rejects a single add/generate command.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// StartError rejects a start request without touching any state.
type StartError struct {
	Algorithm string
	Err       error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("cannot start %s: %v", e.Algorithm, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// InvariantError reports a generator that produced an invalid step or
// failed to terminate. Step is the 1-based index of the offending step.
type InvariantError struct {
	Algorithm string
	Step      int
	Kind      Kind
	Err       error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: step %d (%s): %v", e.Algorithm, e.Step, e.Kind, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// IsInvariant reports whether err is a generator invariant violation.
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
