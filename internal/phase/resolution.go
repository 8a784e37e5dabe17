package phase

import "math/big"

// Resolution describes the angular resolution of an n-digit phase.
type Resolution struct {
	// Digits is the digit count n.
	Digits int
	// Subdivisions is Base^n, the number of distinct phases.
	Subdivisions *big.Int
	// FitsInt64 reports whether every phase index fits in a signed int64.
	FitsInt64 bool
	// DegreesPerStep is 360 / Base^n.
	DegreesPerStep float64
}

// TotalSubdivisions returns Base^n. It returns 1 for n <= 0.
func TotalSubdivisions(n int) *big.Int {
	if n <= 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Exp(bigBase, big.NewInt(int64(n)), nil)
}

// FitsInt64 reports whether Base^n <= MaxInt64.
func FitsInt64(n int) bool {
	return TotalSubdivisions(n).IsInt64()
}

// DegreesPerStep returns the angle, in degrees, between two adjacent n-digit
// phases.
func DegreesPerStep(n int) float64 {
	return ResolutionFor(n).DegreesPerStep
}

// ResolutionFor returns the resolution of an n-digit phase.
func ResolutionFor(n int) Resolution {
	total := TotalSubdivisions(n)
	step, _ := new(big.Float).Quo(big.NewFloat(360), new(big.Float).SetInt(total)).Float64()
	return Resolution{
		Digits:         n,
		Subdivisions:   total,
		FitsInt64:      total.IsInt64(),
		DegreesPerStep: step,
	}
}

// ResolutionTable returns the resolutions for 1..maxDigits digits. The table
// ends with the first row that no longer fits in an int64.
func ResolutionTable(maxDigits int) []Resolution {
	rows := make([]Resolution, 0, maxDigits)
	for n := 1; n <= maxDigits; n++ {
		r := ResolutionFor(n)
		rows = append(rows, r)
		if !r.FitsInt64 {
			break
		}
	}
	return rows
}
