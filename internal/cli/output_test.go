package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/b13phase/internal/level0"
	"github.com/agbru/b13phase/internal/phase"
	"github.com/agbru/b13phase/internal/sweep"
)

func TestDisplayResolutionTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayResolutionTable(&buf, phase.ResolutionTable(10))
	out := buf.String()
	for _, want := range []string{"3,120", "30,371,328,000", "295,646,655,283,200,000", "yes", "no"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 7 {
		t.Errorf("table has %d lines, want header + 6 rows", lines)
	}
}

func TestFormatCarry(t *testing.T) {
	t.Parallel()
	if got := FormatCarry(0); got != "carry=0" {
		t.Errorf("FormatCarry(0) = %q", got)
	}
	if got := FormatCarry(1); got != "carry=1" {
		t.Errorf("FormatCarry(1) = %q", got)
	}
}

func TestDisplayDigitsAndPacked(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	d := phase.Digits{1, 2, 3, 4, 5}
	DisplayDigits(&buf, "digits", d)
	p, _ := phase.Pack(d)
	DisplayPacked(&buf, "packed", p, d)
	DisplaySum(&buf, "sum", phase.Digits{0, 0}, 1)
	out := buf.String()
	for _, want := range []string{"digits:    [1 2 3 4 5]", "0x001002003004005", "sum:       [0 0] carry=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayEvaluation(t *testing.T) {
	t.Parallel()
	d := phase.Digits{780, 0, 0}
	steps, err := phase.EvaluateSteps(d, level0.Builtin())
	if err != nil {
		t.Fatal(err)
	}

	var quiet, verbose bytes.Buffer
	DisplayEvaluation(&quiet, d, steps, false)
	DisplayEvaluation(&verbose, d, steps, true)

	if !strings.Contains(quiet.String(), "(0, 3120)") || strings.Contains(quiet.String(), "level") {
		t.Errorf("non-verbose output = %q", quiet.String())
	}
	if strings.Count(verbose.String(), "level") != 3 {
		t.Errorf("verbose output should list 3 levels:\n%s", verbose.String())
	}
	DisplayEvaluation(io.Discard, nil, nil, true)
}

func runSmallSweep(t *testing.T) sweep.Result {
	t.Helper()
	res, err := sweep.Run(context.Background(), sweep.Options{Digits: 2, Samples: 12, Workers: 2, Table: level0.Builtin()}, nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestDisplaySweepSummary(t *testing.T) {
	t.Parallel()
	res := runSmallSweep(t)

	var full bytes.Buffer
	DisplaySweepSummary(&full, res, false)
	for _, want := range []string{"--- Sweep ---", res.RunID, "12 of 9,734,400 phases", "mean", "magnitude²/BASE²"} {
		if !strings.Contains(full.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, full.String())
		}
	}

	var quiet bytes.Buffer
	DisplaySweepSummary(&quiet, res, true)
	if fields := strings.Fields(quiet.String()); len(fields) != 3 {
		t.Errorf("quiet summary = %q, want three numbers", quiet.String())
	}
}

func TestFormatSweepPlotEmpty(t *testing.T) {
	t.Parallel()
	if got := FormatSweepPlot(sweep.Result{}, 40, 5); got != "" {
		t.Errorf("plot of an empty sweep = %q", got)
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	if err := WriteResultToFile("", "pack", "ignored"); err != nil {
		t.Fatalf("empty path: %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	if err := WriteResultToFile(path, "pack", "0x001002003004005"); err != nil {
		t.Fatalf("WriteResultToFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# b13phase pack\n") || !strings.HasSuffix(string(data), "0x001002003004005\n") {
		t.Errorf("file content = %q", data)
	}
}
