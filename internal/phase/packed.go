package phase

import "fmt"

// Packed is a 5-digit phase packed into one 64-bit word. Digit i (0 = most
// significant) occupies bits [(4-i)*12, (4-i)*12+12); bits 60..63 are zero.
//
// Every 12-bit field of a valid word is below Base. Fields in [Base, 4095]
// and non-zero reserved bits make the word invalid, and Unpack rejects them.
type Packed uint64

// MaxPacked is the packed encoding of the largest 5-digit phase.
const MaxPacked Packed = MaxDigit<<48 | MaxDigit<<36 | MaxDigit<<24 | MaxDigit<<12 | MaxDigit

// String formats p as a zero-padded hexadecimal word; each group of three hex
// characters is one digit field.
func (p Packed) String() string {
	return fmt.Sprintf("0x%015x", uint64(p))
}

// Digits unpacks p. See Unpack.
func (p Packed) Digits() (Digits, error) {
	return Unpack(p)
}

// Pack encodes exactly PackedDigits digits into one word, most significant
// digit in the highest occupied field.
//
// It fails with ErrInvalidArgument when len(d) != 5 and with ErrInvalidDigit
// when a digit is outside [0, Base).
func Pack(d Digits) (Packed, error) {
	const op = "pack"
	if len(d) != PackedDigits {
		return 0, newError(op, ErrInvalidArgument, "got %d digits, want %d", len(d), PackedDigits)
	}
	var x uint64
	for i, v := range d {
		if v < 0 || v >= Base {
			return 0, digitError(op, i, v)
		}
		x = x<<BitsPerDigit | uint64(v)
	}
	return Packed(x), nil
}

// Unpack extracts the five digit fields of p, least significant first, and
// returns them most significant first.
//
// It fails with ErrInvalidPackedValue when a field is >= Base or any of the
// reserved top bits is set.
func Unpack(p Packed) (Digits, error) {
	const op = "unpack"
	x := uint64(p)
	if x&reservedMask != 0 {
		return nil, newError(op, ErrInvalidPackedValue, "reserved bits set in %s", p)
	}
	out := make(Digits, PackedDigits)
	for i := PackedDigits - 1; i >= 0; i-- {
		out[i] = int(x & DigitMask)
		x >>= BitsPerDigit
	}
	for i, v := range out {
		if v >= Base {
			return nil, newError(op, ErrInvalidPackedValue, "field %d is %d, want 0..%d", i, v, MaxDigit)
		}
	}
	return out, nil
}

// AddPacked adds two packed phases by unpacking them, adding the digit arrays
// and repacking the sum. The carry out of the fifth digit is lost from the
// word and reported as the second result (0 or 1).
//
// It fails with ErrInvalidPackedValue when either operand is invalid.
func AddPacked(a, b Packed) (Packed, uint64, error) {
	da, err := Unpack(a)
	if err != nil {
		return 0, 0, err
	}
	db, err := Unpack(b)
	if err != nil {
		return 0, 0, err
	}
	sum, carry, err := Add(da, db)
	if err != nil {
		return 0, 0, err
	}
	p, err := Pack(sum)
	if err != nil {
		return 0, 0, err
	}
	return p, carry, nil
}
