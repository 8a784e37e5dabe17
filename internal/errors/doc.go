// Package apperrors defines structured application error types and exit
// codes, allowing for a clear distinction between error classes
// (configuration, rejected phase operation, timeout) and for carrying the
// underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All wrapping types implement the Unwrap() method to support errors.Is() and errors.As().
package apperrors
