// Package phase implements an exact angular phase in the fixed radix
// Base = 3120.
//
// A phase is stored either as a variable-length digit array ([Digits], most
// significant digit first) or, for the common 5-digit case, as a single
// packed 64-bit word ([Packed], 12 bits per digit). Arithmetic on both forms
// is exact: additions return the carry out of the most significant digit
// instead of folding it back, so a fixed-width phase wraps modulo Base^n and
// the caller decides whether the overflow matters.
//
// [Evaluate] maps a phase to an approximate integer (cos, sin) vector using an
// injected level-0 table. It is a prototype: only determinism is guaranteed.
//
// Every function in this package is pure and safe for concurrent use.
package phase
