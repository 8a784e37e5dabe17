// Package logging provides the structured logging interface used by the phase
// tools. It abstracts the underlying implementation (zerolog by default, the
// standard library logger as a fallback) so components log the same way.
package logging
