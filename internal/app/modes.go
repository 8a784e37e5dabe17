package app

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/agbru/b13phase/internal/cli"
	apperrors "github.com/agbru/b13phase/internal/errors"
	"github.com/agbru/b13phase/internal/format"
	"github.com/agbru/b13phase/internal/logging"
	"github.com/agbru/b13phase/internal/phase"
	"github.com/agbru/b13phase/internal/sweep"
)

// inputDigits returns the phase given by -digits, or -x converted to n digits.
func (a *Application) inputDigits(n int) (phase.Digits, error) {
	if a.Config.Digits != "" {
		d, err := cli.ParseDigitList(a.Config.Digits)
		if err != nil {
			return nil, apperrors.NewConfigError("-digits: %v", err)
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		return d, nil
	}
	x, err := cli.ParseIndex(a.Config.X)
	if err != nil {
		return nil, apperrors.NewConfigError("-x: %v", err)
	}
	return phase.FromInt(x, n)
}

func (a *Application) observe(op string, err error) error {
	a.metrics.ObserveOperation(op, err)
	return err
}

// angleOf returns the angle of d in degrees.
func angleOf(d phase.Digits) float64 {
	idx, err := phase.ToInt(d)
	if err != nil {
		return 0
	}
	num := new(big.Float).Mul(new(big.Float).SetInt(idx), big.NewFloat(360))
	deg, _ := num.Quo(num, new(big.Float).SetInt(phase.TotalSubdivisions(len(d)))).Float64()
	return deg
}

func (a *Application) runResolution(_ context.Context, out io.Writer) error {
	rows := phase.ResolutionTable(a.Config.MaxDigits)
	if a.Config.Quiet {
		for _, r := range rows {
			fmt.Fprintf(out, "%d %s %t %g\n", r.Digits, r.Subdivisions, r.FitsInt64, r.DegreesPerStep)
		}
		return nil
	}
	cli.DisplayHeader(out, fmt.Sprintf("Resolution table (BASE=%d)", phase.Base))
	cli.DisplayResolutionTable(out, rows)
	return nil
}

func (a *Application) runConvert(_ context.Context, out io.Writer) error {
	d, err := a.inputDigits(a.Config.N)
	if err = a.observe("convert", err); err != nil {
		return err
	}
	idx, err := phase.ToInt(d)
	if err != nil {
		return err
	}
	if a.Config.Quiet {
		fmt.Fprintf(out, "%s %s\n", idx, d)
		return nil
	}
	fmt.Fprintf(out, "%-10s %s\n", "index:", format.FormatBigGrouped(idx))
	cli.DisplayDigits(out, "digits", d)
	fmt.Fprintf(out, "%-10s %s\n", "angle:", format.FormatDegrees(angleOf(d)))
	if len(d) == phase.PackedDigits {
		if p, err := phase.Pack(d); err == nil {
			cli.DisplayPacked(out, "packed", p, d)
		}
	}
	return nil
}

func (a *Application) runAdd(_ context.Context, out io.Writer) error {
	if a.Config.Y == "" {
		return apperrors.NewConfigError("add mode needs -y")
	}
	left, err := a.inputDigits(a.Config.N)
	if err != nil {
		return err
	}
	y, err := cli.ParseIndex(a.Config.Y)
	if err != nil {
		return apperrors.NewConfigError("-y: %v", err)
	}
	right, err := phase.FromInt(y, len(left))
	if err != nil {
		return err
	}
	sum, carry, err := phase.Add(left, right)
	if err = a.observe("add", err); err != nil {
		return err
	}
	a.metrics.ObserveCarry(carry)

	if a.Config.Quiet {
		fmt.Fprintf(out, "%s %d\n", sum, carry)
		return nil
	}
	cli.DisplayDigits(out, "a", left)
	cli.DisplayDigits(out, "b", right)
	cli.DisplaySum(out, "a+b", sum, carry)
	if idx, err := phase.ToInt(sum); err == nil {
		fmt.Fprintf(out, "%-10s %s\n", "index:", format.FormatBigGrouped(idx))
	}
	return nil
}

func (a *Application) runInc(_ context.Context, out io.Writer) error {
	d, err := a.inputDigits(a.Config.N)
	if err != nil {
		return err
	}
	next, carry, err := phase.Increment(d, a.Config.Step)
	if err = a.observe("increment", err); err != nil {
		return err
	}
	a.metrics.ObserveCarry(carry)

	if a.Config.Quiet {
		fmt.Fprintf(out, "%s %d\n", next, carry)
		return nil
	}
	cli.DisplayDigits(out, "phase", d)
	cli.DisplaySum(out, fmt.Sprintf("+%d", a.Config.Step), next, carry)
	return nil
}

// runPack packs -digits, or -x converted to five digits.
func (a *Application) runPack(_ context.Context, out io.Writer) error {
	d, err := a.inputDigits(phase.PackedDigits)
	if err != nil {
		return err
	}
	p, err := phase.Pack(d)
	if err = a.observe("pack", err); err != nil {
		return err
	}
	if a.Config.Quiet {
		fmt.Fprintf(out, "%d\n", uint64(p))
		return nil
	}
	cli.DisplayDigits(out, "digits", d)
	cli.DisplayPacked(out, "packed", p, d)
	return nil
}

func (a *Application) runUnpack(_ context.Context, out io.Writer) error {
	if a.Config.Word == "" {
		return apperrors.NewConfigError("unpack mode needs -word")
	}
	p, err := cli.ParseWord(a.Config.Word)
	if err != nil {
		return apperrors.NewConfigError("-word: %v", err)
	}
	d, err := phase.Unpack(p)
	if err = a.observe("unpack", err); err != nil {
		return err
	}
	if a.Config.Quiet {
		fmt.Fprintln(out, d)
		return nil
	}
	cli.DisplayPacked(out, "packed", p, d)
	cli.DisplayDigits(out, "unpacked", d)
	return nil
}

func (a *Application) runEval(_ context.Context, out io.Writer) error {
	d, err := a.inputDigits(a.Config.N)
	if err != nil {
		return err
	}
	steps, err := phase.EvaluateSteps(d, a.table)
	if err = a.observe("evaluate", err); err != nil {
		return err
	}
	if a.Config.Quiet {
		v := steps[len(steps)-1]
		fmt.Fprintf(out, "%s %s\n", v.X, v.Y)
		return nil
	}
	cli.DisplayDigits(out, "phase", d)
	fmt.Fprintf(out, "%-10s %s\n", "angle:", format.FormatDegrees(angleOf(d)))
	cli.DisplayEvaluation(out, d, steps, a.Config.Verbose)
	return nil
}

func (a *Application) runSweep(ctx context.Context, out io.Writer) error {
	if a.Config.MetricsAddr != "" {
		serveCtx, stop := context.WithCancel(ctx)
		defer stop()
		if _, err := a.metrics.Serve(serveCtx, a.Config.MetricsAddr); err != nil {
			return apperrors.NewConfigError("-metrics-addr: %v", err)
		}
		a.logger.Info("serving metrics", logging.String("addr", "http://"+a.Config.MetricsAddr+"/metrics"))
	}

	var reporter sweep.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := a.progressOut
	if progressOut == nil {
		progressOut = out
	}
	if a.Config.Quiet {
		reporter = sweep.NullProgressReporter{}
		progressOut = io.Discard
	} else {
		fmt.Fprintf(out, "Sweeping %d phases of %d digits with %d workers...\n",
			a.Config.Samples, a.Config.N, a.Config.Workers)
	}

	res, err := sweep.Run(ctx, sweep.Options{
		Digits:  a.Config.N,
		Samples: a.Config.Samples,
		Workers: a.Config.Workers,
		Table:   a.table,
		Metrics: a.metrics,
		Logger:  a.logger,
	}, reporter, progressOut)
	if err != nil {
		return err
	}
	cli.DisplaySweepSummary(out, res, a.Config.Quiet)
	return nil
}
