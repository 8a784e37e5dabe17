//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/b13phase/internal/format"
	"github.com/agbru/b13phase/internal/sweep"
	"github.com/agbru/b13phase/internal/ui"
)

const (
	// ProgressRefreshRate is the spinner and progress bar refresh interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so progress display can be tested.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a progress bar and ETA until updates
// is closed, then prints the final bar. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan sweep.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()
	displayProgress(newSpinner(out), updates, total, out)
}

func displayProgress(s Spinner, updates <-chan sweep.ProgressUpdate, total int, out io.Writer) {
	tracker := format.NewProgressWithETA(total)
	render := func() string {
		return " Sweeping " + format.FormatProgressBarWithETA(tracker.Fraction(), tracker.ETA(), ProgressBarWidth)
	}

	s.UpdateSuffix(render())
	s.Start()
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	done := 0
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s✓%s Sweep %s\n", ui.ColorGreen(), ui.ColorReset(),
					format.FormatProgressBarWithETA(tracker.Fraction(), 0, ProgressBarWidth))
				return
			}
			if u.Done > done {
				tracker.Advance(u.Done - done)
				done = u.Done
			}
		case <-ticker.C:
			s.UpdateSuffix(render())
		}
	}
}

// CLIProgressReporter displays sweep progress with a spinner.
type CLIProgressReporter struct{}

var _ sweep.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements sweep.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan sweep.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, updates, total, out)
}

// CLIColorProvider feeds the active theme to apperrors.HandleOperationError.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }
