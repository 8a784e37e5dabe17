package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/b13phase/internal/phase"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorPhase    = 3   // Indicates a rejected phase operation (bad digit, length, packed word).
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// OperationError wraps a failed phase operation run on behalf of the user,
// recording which CLI mode issued it.
type OperationError struct {
	// Mode is the CLI mode that ran the operation (e.g. "add", "sweep").
	Mode string
	// Cause is the underlying error.
	Cause error
}

// Error returns the mode followed by the cause's message.
func (e OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Mode, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e OperationError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that exceeded its time limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap. A nil err yields nil.
//   - format: A format string (see fmt.Sprintf) for the context message.
//   - args: Arguments to be formatted into the message.
//
// Returns:
//   - error: An error whose message is "<context>: <err>" and which unwraps to err.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsPhaseError reports whether err carries one of the phase error kinds.
func IsPhaseError(err error) bool {
	return errors.Is(err, phase.ErrInvalidArgument) ||
		errors.Is(err, phase.ErrInvalidDigit) ||
		errors.Is(err, phase.ErrLengthMismatch) ||
		errors.Is(err, phase.ErrInvalidPackedValue)
}

// ExitCodeFor maps an error to the process exit code reported for it.
//
// Parameters:
//   - err: The error returned by a CLI mode, or nil.
//
// Returns:
//   - int: ExitSuccess for nil, ExitErrorTimeout, ExitErrorCanceled,
//     ExitErrorConfig or ExitErrorPhase for the matching error kinds, and
//     ExitErrorGeneric otherwise.
func ExitCodeFor(err error) int {
	var configErr ConfigError
	var validationErr ValidationError
	var timeoutErr TimeoutError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case IsPhaseError(err):
		return ExitErrorPhase
	default:
		return ExitErrorGeneric
	}
}

// ColorProvider supplies the ANSI sequences used when reporting errors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleOperationError prints err to out and returns the matching exit code.
//
// Parameters:
//   - err: The error to report. A nil error prints nothing.
//   - duration: The time spent before the failure, shown for timeouts and cancellations.
//   - out: The writer that receives the message.
//   - colors: The ANSI color sequences used to highlight the message.
//
// Returns:
//   - int: The exit code computed by ExitCodeFor.
func HandleOperationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCodeFor(err)
	switch code {
	case ExitSuccess:
		return code
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sOperation timed out after %s.%s\n", colors.Red(), duration, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sOperation canceled after %s.%s\n", colors.Yellow(), duration, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
