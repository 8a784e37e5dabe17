package phase_test

import (
	"fmt"
	"math/big"

	"github.com/agbru/b13phase/internal/phase"
)

// ExampleFromInt decomposes an index into six radix-3120 digits.
func ExampleFromInt() {
	d, err := phase.FromInt(big.NewInt(123456789), 6)
	if err != nil {
		fmt.Println(err)
		return
	}
	x, _ := phase.ToInt(d)
	fmt.Println(d)
	fmt.Println(x)
	// Output:
	// [0 0 0 12 2129 1509]
	// 123456789
}

// ExampleAdd shows that the carry out of the most significant digit is
// returned rather than widening the result.
func ExampleAdd() {
	a := phase.Digits{phase.MaxDigit, phase.MaxDigit}
	b := phase.Digits{0, 1}
	sum, carry, _ := phase.Add(a, b)
	fmt.Println(sum, carry)
	// Output:
	// [0 0] 1
}

// ExampleAddPacked adds two packed 5-digit phases.
func ExampleAddPacked() {
	a, _ := phase.Pack(phase.Digits{0, 0, 0, 0, 3000})
	b, _ := phase.Pack(phase.Digits{0, 0, 0, 0, 500})
	sum, carry, _ := phase.AddPacked(a, b)
	d, _ := phase.Unpack(sum)
	fmt.Println(sum, d, carry)
	// Output:
	// 0x00000000000117c [0 0 0 1 380] 0
}

// ExampleEvaluate rotates a base vector with one correction digit.
func ExampleEvaluate() {
	table := phase.Level0Func(func(int) (int64, int64) { return phase.Base, 0 })
	v, _ := phase.Evaluate(phase.Digits{0, 1560}, table)
	fmt.Println(v)
	// Output:
	// (3120, 1560)
}
