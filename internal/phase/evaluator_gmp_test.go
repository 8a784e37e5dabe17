//go:build gmp

package phase

import (
	"math/big"
	"testing"

	"github.com/ncw/gmp"
)

// TestEvaluateGMP_MatchesEvaluate cross-checks the GMP evaluator against the
// math/big implementation over phases of growing width.
func TestEvaluateGMP_MatchesEvaluate(t *testing.T) {
	table := Level0Func(func(digit int) (int64, int64) {
		return int64(Base - 2*digit), int64(digit) - Base/2
	})
	d := Digits{0}
	for width := 1; width <= 24; width++ {
		want, err := Evaluate(d, table)
		if err != nil {
			t.Fatal(err)
		}
		got, err := EvaluateGMP(d, table)
		if err != nil {
			t.Fatal(err)
		}
		if got.X.Cmp(want.X) != 0 || got.Y.Cmp(want.Y) != 0 {
			t.Fatalf("width %d: EvaluateGMP(%v) = %s, Evaluate = %s", width, d, got, want)
		}
		d = append(d, (width*977)%Base)
	}
}

func TestGMPToBig(t *testing.T) {
	for _, s := range []string{"0", "1", "-1", "3120", "-3114", "-123456789012345678901234567890"} {
		z, ok := new(gmp.Int).SetString(s, 10)
		if !ok {
			t.Fatalf("gmp SetString(%q) failed", s)
		}
		want, _ := new(big.Int).SetString(s, 10)
		if got := gmpToBig(z); got == nil || got.Cmp(want) != 0 {
			t.Errorf("gmpToBig(%s) = %v, want %s", s, got, want)
		}
	}
}

func TestEvaluateGMP_NegativeComponents(t *testing.T) {
	table := Level0Func(func(digit int) (int64, int64) { return -Base, -7 })
	d := Digits{1560, 3119, 1, 2500}
	want, err := Evaluate(d, table)
	if err != nil {
		t.Fatal(err)
	}
	got, err := EvaluateGMP(d, table)
	if err != nil {
		t.Fatal(err)
	}
	if got.X.Sign() >= 0 {
		t.Fatalf("expected a negative X, got %s", got.X)
	}
	if got.X.Cmp(want.X) != 0 || got.Y.Cmp(want.Y) != 0 {
		t.Errorf("EvaluateGMP(%v) = %s, Evaluate = %s", d, got, want)
	}
}
