package phase

import "math"

// ─────────────────────────────────────────────────────────────────────────────
// Radix Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// Base is the radix of every digit array. A full turn is split into
	// Base^n steps for an n-digit phase.
	Base = 3120

	// MaxDigit is the largest valid digit value.
	MaxDigit = Base - 1

	// MaxInt64 is the largest signed 64-bit integer. A resolution whose
	// subdivision count exceeds it cannot be indexed with an int64.
	MaxInt64 = math.MaxInt64
)

// ─────────────────────────────────────────────────────────────────────────────
// Packed Layout Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// BitsPerDigit is the width of one packed digit field. 2^12 = 4096 > Base.
	BitsPerDigit = 12

	// DigitMask selects one packed digit field.
	DigitMask = 1<<BitsPerDigit - 1

	// PackedDigits is the number of digits held by a Packed word (60 of 64 bits).
	PackedDigits = 5

	// packedBits is the number of low-order bits a valid Packed word may use.
	packedBits = PackedDigits * BitsPerDigit

	// reservedMask covers the top bits that are always zero in a valid word.
	reservedMask = ^uint64(1<<packedBits - 1)
)
