//go:build gmp

// This file provides a GMP-backed evaluator, compiled only with the "gmp"
// build tag (go build -tags=gmp). It requires libgmp on the host.

package phase

import (
	"math/big"

	"github.com/ncw/gmp"
)

// EvaluateGMP is Evaluate computed with GMP integers. It returns exactly the
// same vector as Evaluate for every input; the gain only shows for phases with
// many digits, where the scale Base^l grows large.
func EvaluateGMP(d Digits, table Level0) (Vector, error) {
	const op = "evaluate"
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
	cx, cy := gmp.NewInt(x0), gmp.NewInt(y0)

	base := gmp.NewInt(Base)
	scale := gmp.NewInt(1)
	fine := new(gmp.Int)
	t1, t2 := new(gmp.Int), new(gmp.Int)
	nx, ny := new(gmp.Int), new(gmp.Int)
	for l := 1; l < len(d); l++ {
		scale.Mul(scale, base)
		fine.SetInt64(int64(d[l]))

		t1.Mul(cx, scale)
		t2.Mul(cy, fine)
		nx.Sub(t1, t2)
		nx.Div(nx, scale)

		t1.Mul(cy, scale)
		t2.Mul(cx, fine)
		ny.Add(t1, t2)
		ny.Div(ny, scale)

		cx, nx = nx, cx
		cy, ny = ny, cy
	}
	return Vector{X: gmpToBig(cx), Y: gmpToBig(cy)}, nil
}

// gmpToBig copies z's magnitude and sign into a new big.Int.
func gmpToBig(z *gmp.Int) *big.Int {
	out := new(big.Int).SetBytes(z.Bytes())
	if z.Sign() < 0 {
		out.Neg(out)
	}
	return out
}
