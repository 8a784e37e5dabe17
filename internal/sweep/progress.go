package sweep

import (
	"io"
	"sync"
)

// ProgressUpdate reports that Done of Total samples have been evaluated.
type ProgressUpdate struct {
	Done  int
	Total int
}

// ProgressReporter displays sweep progress. DisplayProgress runs in its own
// goroutine, consumes updates until the channel is closed and then calls
// wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, updates, total, out)
}

// NullProgressReporter drains updates without output. Used in quiet mode.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range updates {
	}
}
