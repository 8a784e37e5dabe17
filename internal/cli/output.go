// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a string without performing I/O.
//   - Write* functions write to files on the filesystem.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/agbru/b13phase/internal/format"
	"github.com/agbru/b13phase/internal/phase"
	"github.com/agbru/b13phase/internal/sweep"
	"github.com/agbru/b13phase/internal/ui"
)

// OutputConfig controls how a result is shown.
type OutputConfig struct {
	OutputFile string
	Quiet      bool
	Verbose    bool
}

// DisplayHeader prints a section title.
func DisplayHeader(out io.Writer, title string) {
	fmt.Fprintf(out, "%s%s--- %s ---%s\n", ui.ColorBold(), ui.ColorCyan(), title, ui.ColorReset())
}

// DisplayResolutionTable prints digit count, BASE^n, int64 feasibility and
// angular step per row.
func DisplayResolutionTable(out io.Writer, rows []phase.Resolution) {
	fmt.Fprintf(out, "%s%-7s %-38s %-6s %s%s\n", ui.ColorUnderline(), "digits", "subdivisions", "int64", "degrees/step", ui.ColorReset())
	for _, r := range rows {
		fits := ui.Colorize(ui.ColorGreen(), "yes")
		if !r.FitsInt64 {
			fits = ui.Colorize(ui.ColorRed(), "no ")
		}
		fmt.Fprintf(out, "%-7d %-38s %s    %s\n",
			r.Digits, format.FormatBigGrouped(r.Subdivisions), fits, format.FormatDegrees(r.DegreesPerStep))
	}
}

// FormatCarry renders a carry as "carry=N", highlighted when non-zero.
func FormatCarry(carry uint64) string {
	s := fmt.Sprintf("carry=%d", carry)
	if carry != 0 {
		return ui.Colorize(ui.ColorYellow(), s)
	}
	return s
}

// DisplayDigits prints "label: [d0 d1 ...]".
func DisplayDigits(out io.Writer, label string, d phase.Digits) {
	fmt.Fprintf(out, "%-10s %s%s%s\n", label+":", ui.ColorMagenta(), d, ui.ColorReset())
}

// DisplaySum prints the outcome of an addition or increment.
func DisplaySum(out io.Writer, label string, d phase.Digits, carry uint64) {
	fmt.Fprintf(out, "%-10s %s%s%s %s\n", label+":", ui.ColorMagenta(), d, ui.ColorReset(), FormatCarry(carry))
}

// DisplayPacked prints a packed word next to its digits.
func DisplayPacked(out io.Writer, label string, p phase.Packed, d phase.Digits) {
	fmt.Fprintf(out, "%-10s %s%s%s (%d) %s\n", label+":", ui.ColorYellow(), p, ui.ColorReset(), uint64(p), d)
}

// DisplayEvaluation prints the evaluator result. In verbose mode every
// intermediate level is listed.
func DisplayEvaluation(out io.Writer, d phase.Digits, steps []phase.Vector, verbose bool) {
	if len(steps) == 0 {
		return
	}
	if verbose {
		for l, v := range steps {
			fmt.Fprintf(out, "  level %-2d digit %-4d -> %s\n", l, d[l], v)
		}
	}
	final := steps[len(steps)-1]
	fmt.Fprintf(out, "%-10s %s%s%s magnitude²/BASE²=%s\n", "vector:", ui.ColorGreen(), final, ui.ColorReset(),
		format.FormatRatio(final.MagnitudeRatio()))
}

// FormatSweepPlot plots the magnitude ratio of each sample.
func FormatSweepPlot(res sweep.Result, width, height int) string {
	ratios := res.Ratios()
	if len(ratios) == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("magnitude²/BASE² over %d samples, n=%d", len(ratios), res.Digits)),
		asciigraph.Precision(4),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(ratios, opts...)
}

// DisplaySweepSummary prints the sweep statistics and, unless quiet, a plot.
func DisplaySweepSummary(out io.Writer, res sweep.Result, quiet bool) {
	if quiet {
		fmt.Fprintln(out, FormatQuietSweep(res))
		return
	}
	DisplayHeader(out, "Sweep")
	fmt.Fprintf(out, "run:       %s\n", res.RunID)
	fmt.Fprintf(out, "samples:   %d of %s phases (n=%d)\n", len(res.Samples),
		format.FormatBigGrouped(phase.TotalSubdivisions(res.Digits)), res.Digits)
	fmt.Fprintf(out, "ratio:     min %s (at %s)  max %s (at %s)  mean %s\n",
		format.FormatRatio(res.Stats.Min), res.Samples[res.Stats.MinAt].Digits,
		format.FormatRatio(res.Stats.Max), res.Samples[res.Stats.MaxAt].Digits,
		format.FormatRatio(res.Stats.Mean))
	fmt.Fprintf(out, "elapsed:   %s, %s allocated\n", format.FormatExecutionDuration(res.Duration), format.FormatBytes(res.Allocated))
	if len(res.Samples) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, FormatSweepPlot(res, 60, 10))
	}
}

// FormatQuietSweep renders "min max mean" on one line for scripts.
func FormatQuietSweep(res sweep.Result) string {
	return fmt.Sprintf("%s %s %s", format.FormatRatio(res.Stats.Min), format.FormatRatio(res.Stats.Max), format.FormatRatio(res.Stats.Mean))
}

// WriteResultToFile writes body to path under a small header naming the mode.
func WriteResultToFile(path, mode, body string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# b13phase %s\n", mode)
	fmt.Fprintf(&b, "# Generated: %s\n\n", time.Now().Format(time.RFC3339))
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
