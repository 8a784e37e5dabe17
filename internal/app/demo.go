package app

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/agbru/b13phase/internal/cli"
	"github.com/agbru/b13phase/internal/format"
	"github.com/agbru/b13phase/internal/phase"
)

// Walkthrough inputs.
const (
	demoDigits   = 6
	demoIndex    = 123456789
	demoEvalSize = 3
)

// runDemo prints the resolution table followed by a walkthrough of the
// digit-array, packed and evaluator operations.
func (a *Application) runDemo(_ context.Context, out io.Writer) error {
	steps := []func(io.Writer) error{
		a.demoResolution,
		demoDigitArrays,
		demoPacked,
		a.demoEvaluator,
	}
	for i, step := range steps {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := step(out); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) demoResolution(out io.Writer) error {
	cli.DisplayHeader(out, fmt.Sprintf("Resolution table (BASE=%d)", phase.Base))
	cli.DisplayResolutionTable(out, phase.ResolutionTable(a.Config.MaxDigits))
	return nil
}

func demoDigitArrays(out io.Writer) error {
	cli.DisplayHeader(out, "Digit-array phase")
	fmt.Fprintf(out, "digits=%d, total indices=BASE^digits=%s\n",
		demoDigits, format.FormatBigGrouped(phase.TotalSubdivisions(demoDigits)))

	d, err := phase.FromUint64(demoIndex, demoDigits)
	if err != nil {
		return err
	}
	back, err := phase.ToInt(d)
	if err != nil {
		return err
	}
	status := "ok"
	if back.Cmp(big.NewInt(demoIndex)) != 0 {
		status = "mismatch"
	}
	fmt.Fprintf(out, "%-10s %d\n", "index:", demoIndex)
	cli.DisplayDigits(out, "digits", d)
	fmt.Fprintf(out, "%-10s %s (%s)\n", "roundtrip:", back, status)

	left, err := phase.FromUint64(1000, demoDigits)
	if err != nil {
		return err
	}
	right, err := phase.FromUint64(2500, demoDigits)
	if err != nil {
		return err
	}
	sum, carry, err := phase.Add(left, right)
	if err != nil {
		return err
	}
	idx, err := phase.ToInt(sum)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "1000 + 2500 in radix-%d => %s %s\n", phase.Base, idx, cli.FormatCarry(carry))
	return nil
}

func demoPacked(out io.Writer) error {
	cli.DisplayHeader(out, fmt.Sprintf("Packed phase (%d digits)", phase.PackedDigits))
	d := phase.Digits{1, 2, 3, 4, 5}
	p, err := phase.Pack(d)
	if err != nil {
		return err
	}
	back, err := phase.Unpack(p)
	if err != nil {
		return err
	}
	cli.DisplayDigits(out, "digits", d)
	cli.DisplayPacked(out, "packed", p, back)

	left, err := phase.Pack(phase.Digits{0, 0, 0, 0, 3000})
	if err != nil {
		return err
	}
	right, err := phase.Pack(phase.Digits{0, 0, 0, 0, 500})
	if err != nil {
		return err
	}
	sum, carry, err := phase.AddPacked(left, right)
	if err != nil {
		return err
	}
	sumDigits, err := phase.Unpack(sum)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "3000 + 500 (LSD) => %s %s\n", sumDigits, cli.FormatCarry(carry))
	return nil
}

func (a *Application) demoEvaluator(out io.Writer) error {
	cli.DisplayHeader(out, "Prototype evaluator")
	total := phase.TotalSubdivisions(demoEvalSize)
	fmt.Fprintf(out, "digits=%d, total=%s, deg/step=%s\n", demoEvalSize,
		format.FormatBigGrouped(total), format.FormatDegrees(phase.DegreesPerStep(demoEvalSize)))
	fmt.Fprintf(out, "%6s %18s %-18s %8s %8s %14s\n", "angle", "index", "digits", "cos", "sin", "|v|²/BASE²")

	for quarter := int64(0); quarter < 4; quarter++ {
		idx := new(big.Int).Mul(total, big.NewInt(quarter))
		idx.Quo(idx, big.NewInt(4))
		d, err := phase.FromInt(idx, demoEvalSize)
		if err != nil {
			return err
		}
		v, err := phase.Evaluate(d, a.table)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%5d° %18s %-18s %8d %8d %14s\n", quarter*90,
			format.FormatBigGrouped(idx), d.String(), v.X, v.Y, format.FormatRatio(v.MagnitudeRatio()))
	}
	return nil
}
