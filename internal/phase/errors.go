package phase

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them,
// so callers can classify failures with errors.Is.
var (
	// ErrInvalidArgument reports a violated structural precondition: a digit
	// count below one, a negative or oversized integer, a step outside
	// [0, Base) or a wrong array length for the packed form.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidDigit reports a digit outside [0, Base).
	ErrInvalidDigit = errors.New("invalid digit")

	// ErrLengthMismatch reports two digit arrays of unequal length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInvalidPackedValue reports a packed word that is not the encoding of
	// any valid phase.
	ErrInvalidPackedValue = errors.New("invalid packed value")
)

// Error describes a failed phase operation.
type Error struct {
	// Op is the operation that failed (e.g. "add", "unpack").
	Op string
	// Kind is one of the package error kinds.
	Kind error
	// Detail explains the failure.
	Detail string
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("phase %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("phase %s: %v: %s", e.Op, e.Kind, e.Detail)
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.Kind }

func newError(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// digitError reports the first out-of-range digit in position order.
func digitError(op string, index, value int) error {
	return newError(op, ErrInvalidDigit, "digit %d is %d, want 0..%d", index, value, MaxDigit)
}
