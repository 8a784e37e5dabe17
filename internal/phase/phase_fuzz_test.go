package phase

import (
	"errors"
	"math/big"
	"testing"
)

// FuzzUnpack verifies that Unpack either rejects a word as an invalid packed
// value or returns digits that pack back to the same word.
func FuzzUnpack(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(0x1002003004005))
	f.Add(uint64(MaxPacked))
	f.Add(uint64(3200) << 12)
	f.Add(uint64(1) << 60)
	f.Add(^uint64(0))

	f.Fuzz(func(t *testing.T, word uint64) {
		d, err := Unpack(Packed(word))
		if err != nil {
			if !errors.Is(err, ErrInvalidPackedValue) {
				t.Fatalf("Unpack(%#x) returned unexpected error kind: %v", word, err)
			}
			return
		}
		p, err := Pack(d)
		if err != nil {
			t.Fatalf("Pack(Unpack(%#x)) failed: %v", word, err)
		}
		if uint64(p) != word {
			t.Errorf("Pack(Unpack(%#x)) = %s", word, p)
		}
	})
}

// FuzzAddConsistency verifies Add against big-integer arithmetic for two
// 3-digit phases built from arbitrary 64-bit seeds.
func FuzzAddConsistency(f *testing.F) {
	f.Add(uint64(0), uint64(0))
	f.Add(uint64(1000), uint64(2500))
	f.Add(uint64(30371328000-1), uint64(1))
	f.Add(^uint64(0), ^uint64(0))

	const n = 3
	modulus := TotalSubdivisions(n)

	f.Fuzz(func(t *testing.T, x, y uint64) {
		xi := new(big.Int).Mod(new(big.Int).SetUint64(x), modulus)
		yi := new(big.Int).Mod(new(big.Int).SetUint64(y), modulus)
		a, err := FromInt(xi, n)
		if err != nil {
			t.Fatal(err)
		}
		b, err := FromInt(yi, n)
		if err != nil {
			t.Fatal(err)
		}
		sum, carry, err := Add(a, b)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ToInt(sum)
		if err != nil {
			t.Fatal(err)
		}
		want := new(big.Int).Add(xi, yi)
		if want.Cmp(modulus) >= 0 {
			if carry != 1 {
				t.Errorf("%s + %s: carry = %d, want 1", xi, yi, carry)
			}
			want.Sub(want, modulus)
		} else if carry != 0 {
			t.Errorf("%s + %s: carry = %d, want 0", xi, yi, carry)
		}
		if got.Cmp(want) != 0 {
			t.Errorf("%s + %s = %s, want %s", xi, yi, got, want)
		}
	})
}
