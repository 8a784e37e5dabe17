package phase

import (
	"fmt"
	"math/big"
)

// Level0 supplies the coarse base vectors of the evaluator: for each digit
// value in [0, Base) an integer (cos, sin) pair scaled roughly by Base.
type Level0 interface {
	Vector(digit int) (x, y int64)
}

// Level0Func adapts an ordinary function to the Level0 interface.
type Level0Func func(digit int) (x, y int64)

// Vector calls f(digit).
func (f Level0Func) Vector(digit int) (x, y int64) { return f(digit) }

// Vector is an integer (cos, sin) pair produced by Evaluate.
type Vector struct {
	X *big.Int
	Y *big.Int
}

// String formats v as "(x, y)".
func (v Vector) String() string {
	return fmt.Sprintf("(%s, %s)", v.X, v.Y)
}

// MagnitudeRatio returns (X²+Y²)/Base², the squared length of v relative to a
// unit vector scaled by Base. An exact evaluator would always yield ~1.
func (v Vector) MagnitudeRatio() float64 {
	sq := new(big.Int).Mul(v.X, v.X)
	sq.Add(sq, new(big.Int).Mul(v.Y, v.Y))
	ratio := new(big.Float).Quo(new(big.Float).SetInt(sq), big.NewFloat(Base*Base))
	f, _ := ratio.Float64()
	return f
}

// Evaluate maps a phase to an approximate integer (cos, sin) vector.
//
// The most significant digit selects a base vector from table. Each following
// digit at depth l (l = 1 for the second digit) applies a rotation-like
// correction with scale = Base^l and fine = d[l]:
//
//	cx' = floor((cx*scale - cy*fine) / scale)
//	cy' = floor((cy*scale + cx*fine) / scale)
//
// This is a prototype. Floor division truncates at every level and the
// magnitude drifts as digits are added, so the output is deterministic but not
// an exact trigonometric value.
//
// It fails with ErrInvalidArgument when d is empty or table is nil and with
// ErrInvalidDigit when a digit is outside [0, Base).
func Evaluate(d Digits, table Level0) (Vector, error) {
	return evaluate("evaluate", d, table, nil)
}

// EvaluateSteps is Evaluate that also returns the intermediate vector after
// each digit; steps[0] is the level-0 vector and the last step equals the
// result of Evaluate.
func EvaluateSteps(d Digits, table Level0) ([]Vector, error) {
	steps := make([]Vector, 0, len(d))
	_, err := evaluate("evaluate-steps", d, table, func(x, y *big.Int) {
		steps = append(steps, Vector{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)})
	})
	if err != nil {
		return nil, err
	}
	return steps, nil
}

func evaluate(op string, d Digits, table Level0, visit func(x, y *big.Int)) (Vector, error) {
	if len(d) == 0 {
		return Vector{}, newError(op, ErrInvalidArgument, "empty digit array")
	}
	if table == nil {
		return Vector{}, newError(op, ErrInvalidArgument, "nil level-0 table")
	}
	if err := validateDigits(op, d); err != nil {
		return Vector{}, err
	}

	x0, y0 := table.Vector(d[0])
	cx, cy := big.NewInt(x0), big.NewInt(y0)
	if visit != nil {
		visit(cx, cy)
	}

	scale := big.NewInt(1)
	fine := new(big.Int)
	t1, t2 := new(big.Int), new(big.Int)
	nx, ny := new(big.Int), new(big.Int)
	for l := 1; l < len(d); l++ {
		scale.Mul(scale, bigBase)
		fine.SetInt64(int64(d[l]))

		// cx' = (cx*scale - cy*fine) div scale
		t1.Mul(cx, scale)
		t2.Mul(cy, fine)
		nx.Sub(t1, t2)
		nx.Div(nx, scale)

		// cy' = (cy*scale + cx*fine) div scale
		t1.Mul(cy, scale)
		t2.Mul(cx, fine)
		ny.Add(t1, t2)
		ny.Div(ny, scale)

		cx, nx = nx, cx
		cy, ny = ny, cy
		if visit != nil {
			visit(cx, cy)
		}
	}
	return Vector{X: cx, Y: cy}, nil
}
