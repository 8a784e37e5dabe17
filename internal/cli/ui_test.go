package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/b13phase/internal/cli/mocks"
	"github.com/agbru/b13phase/internal/sweep"
)

func TestDisplayProgressDrivesSpinner(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	s := mocks.NewMockSpinner(ctrl)

	gomock.InOrder(
		s.EXPECT().UpdateSuffix(gomock.Any()).Times(1),
		s.EXPECT().Start().Times(1),
	)
	s.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()
	s.EXPECT().Stop().Times(1)

	updates := make(chan sweep.ProgressUpdate, 4)
	for i := 1; i <= 4; i++ {
		updates <- sweep.ProgressUpdate{Done: i, Total: 4}
	}
	close(updates)

	var out bytes.Buffer
	displayProgress(s, updates, 4, &out)

	if !strings.Contains(out.String(), "100.0%") || !strings.Contains(out.String(), "Sweep") {
		t.Errorf("final progress line = %q", out.String())
	}
}

func TestDisplayProgressIgnoresStaleUpdates(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	s := mocks.NewMockSpinner(ctrl)
	s.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()
	s.EXPECT().Start()
	s.EXPECT().Stop()

	updates := make(chan sweep.ProgressUpdate, 3)
	updates <- sweep.ProgressUpdate{Done: 2, Total: 4}
	updates <- sweep.ProgressUpdate{Done: 1, Total: 4}
	close(updates)

	var out bytes.Buffer
	displayProgress(s, updates, 4, &out)
	if !strings.Contains(out.String(), " 50.0%") {
		t.Errorf("out-of-order updates must not regress progress: %q", out.String())
	}
}

func TestCLIProgressReporter(t *testing.T) {
	t.Parallel()
	updates := make(chan sweep.ProgressUpdate, 1)
	updates <- sweep.ProgressUpdate{Done: 1, Total: 1}
	close(updates)

	var wg sync.WaitGroup
	wg.Add(1)
	CLIProgressReporter{}.DisplayProgress(&wg, updates, 1, io.Discard)
	wg.Wait()
}

func TestCLIColorProvider(t *testing.T) {
	t.Parallel()
	var c CLIColorProvider
	if c.Red() != "" || c.Yellow() != "" || c.Reset() != "" {
		t.Error("colors must be empty under the no-color theme")
	}
}
