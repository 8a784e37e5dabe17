package phase

import (
	"math/big"
	"strconv"
	"strings"
)

// bigBase is Base as a big.Int. It is never modified.
var bigBase = big.NewInt(Base)

// Digits is a phase in digit-array form: radix-Base digits, most significant
// first. An n-digit array addresses [0, Base^n).
//
// Functions in this package never modify a Digits argument and always return
// freshly allocated arrays.
type Digits []int

// Clone returns a copy of d.
func (d Digits) Clone() Digits {
	if d == nil {
		return nil
	}
	out := make(Digits, len(d))
	copy(out, d)
	return out
}

// Equal reports whether d and o have the same length and digits.
func (d Digits) Equal(o Digits) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}

// Validate returns an ErrInvalidDigit error for the first digit outside
// [0, Base), or nil.
func (d Digits) Validate() error {
	return validateDigits("validate", d)
}

// String formats d as "[d0 d1 ... dn-1]".
func (d Digits) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range d {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}

func validateDigits(op string, d Digits) error {
	for i, v := range d {
		if v < 0 || v >= Base {
			return digitError(op, i, v)
		}
	}
	return nil
}

// Zero returns the zero phase with n digits.
func Zero(n int) (Digits, error) {
	if n < 1 {
		return nil, newError("zero", ErrInvalidArgument, "n is %d, want >= 1", n)
	}
	return make(Digits, n), nil
}

// MaxDigits returns the largest n-digit phase, every digit Base-1.
func MaxDigits(n int) (Digits, error) {
	if n < 1 {
		return nil, newError("max", ErrInvalidArgument, "n is %d, want >= 1", n)
	}
	out := make(Digits, n)
	for i := range out {
		out[i] = MaxDigit
	}
	return out, nil
}

// FromInt decomposes x into n radix-Base digits by repeated division. The
// least significant digit is computed first and written last.
//
// It fails with ErrInvalidArgument when n < 1, x is nil or negative, or x does
// not fit in n digits (x >= Base^n).
func FromInt(x *big.Int, n int) (Digits, error) {
	const op = "from int"
	if n < 1 {
		return nil, newError(op, ErrInvalidArgument, "n is %d, want >= 1", n)
	}
	if x == nil {
		return nil, newError(op, ErrInvalidArgument, "x is nil")
	}
	if x.Sign() < 0 {
		return nil, newError(op, ErrInvalidArgument, "x is %s, want >= 0", x)
	}

	out := make(Digits, n)
	v := new(big.Int).Set(x)
	var rem big.Int
	for i := n - 1; i >= 0; i-- {
		v.DivMod(v, bigBase, &rem)
		out[i] = int(rem.Int64())
	}
	if v.Sign() != 0 {
		return nil, newError(op, ErrInvalidArgument, "x = %s does not fit in %d digits", x, n)
	}
	return out, nil
}

// FromUint64 is FromInt for a native unsigned integer.
func FromUint64(x uint64, n int) (Digits, error) {
	return FromInt(new(big.Int).SetUint64(x), n)
}

// Phase interprets idx in [0, Base^n) as an n-digit phase. It is an alias of
// FromInt that reads better at call sites indexing a full turn.
func Phase(idx *big.Int, n int) (Digits, error) {
	return FromInt(idx, n)
}

// ToInt folds d into the integer it represents, most significant digit first.
// An empty array folds to zero. It fails with ErrInvalidDigit when a digit is
// outside [0, Base).
func ToInt(d Digits) (*big.Int, error) {
	x := new(big.Int)
	var dv big.Int
	for i, v := range d {
		if v < 0 || v >= Base {
			return nil, digitError("to int", i, v)
		}
		x.Mul(x, bigBase)
		x.Add(x, dv.SetInt64(int64(v)))
	}
	return x, nil
}

// Widen left-pads d with zero digits to length n, preserving its value. Use it
// before Add when the carry out of the narrower width must be kept.
func Widen(d Digits, n int) (Digits, error) {
	if n < len(d) {
		return nil, newError("widen", ErrInvalidArgument, "n is %d, want >= %d", n, len(d))
	}
	if n < 1 {
		return nil, newError("widen", ErrInvalidArgument, "n is %d, want >= 1", n)
	}
	out := make(Digits, n)
	copy(out[n-len(d):], d)
	return out, nil
}

// Add returns a+b digit by digit with schoolbook carry, least significant
// digit first. The final carry (0 or 1) is returned separately and never
// folded back, so the sum keeps the operands' width and wraps modulo Base^n.
//
// It fails with ErrLengthMismatch when the arrays differ in length, with
// ErrInvalidArgument when both are empty and with ErrInvalidDigit when a digit
// is outside [0, Base).
func Add(a, b Digits) (Digits, uint64, error) {
	const op = "add"
	if len(a) != len(b) {
		return nil, 0, newError(op, ErrLengthMismatch, "len(a) = %d, len(b) = %d", len(a), len(b))
	}
	if len(a) == 0 {
		return nil, 0, newError(op, ErrInvalidArgument, "empty digit arrays")
	}

	out := make(Digits, len(a))
	var carry uint64
	for i := len(a) - 1; i >= 0; i-- {
		ai, bi := a[i], b[i]
		if ai < 0 || ai >= Base {
			return nil, 0, digitError(op, i, ai)
		}
		if bi < 0 || bi >= Base {
			return nil, 0, digitError(op, i, bi)
		}
		s := ai + bi + int(carry)
		if s >= Base {
			out[i] = s - Base
			carry = 1
		} else {
			out[i] = s
			carry = 0
		}
	}
	return out, carry, nil
}

// Increment adds step to the least significant digit of d and propagates the
// carry toward the most significant digit, stopping as soon as it clears.
// It returns a new array and the carry out (0 or 1); d is left untouched.
//
// It fails with ErrInvalidArgument when d is empty or step is outside
// [0, Base), and with ErrInvalidDigit when any digit of d is out of range.
func Increment(d Digits, step int) (Digits, uint64, error) {
	const op = "increment"
	if step < 0 || step >= Base {
		return nil, 0, newError(op, ErrInvalidArgument, "step is %d, want 0..%d", step, MaxDigit)
	}
	if len(d) == 0 {
		return nil, 0, newError(op, ErrInvalidArgument, "empty digit array")
	}
	if err := validateDigits(op, d); err != nil {
		return nil, 0, err
	}

	out := d.Clone()
	carry := step
	for i := len(out) - 1; i >= 0 && carry != 0; i-- {
		v := out[i] + carry
		if v >= Base {
			out[i] = v - Base
			carry = 1
		} else {
			out[i] = v
			carry = 0
		}
	}
	return out, uint64(carry), nil
}
