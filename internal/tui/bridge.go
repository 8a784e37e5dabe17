package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/b13phase/internal/sweep"
)

// programRef survives model copies so background sweeps can reach the
// running program.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, if one is attached.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards sweep progress to the explorer as
// SweepProgressMsg values.
type TUIProgressReporter struct {
	ref *programRef
}

var _ sweep.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress implements sweep.ProgressReporter.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan sweep.ProgressUpdate, total int, _ io.Writer) {
	defer wg.Done()
	for u := range updates {
		// At most about 50 messages per sweep.
		if u.Done == u.Total || u.Done%max(1, total/50) == 0 {
			t.ref.Send(SweepProgressMsg{Done: u.Done, Total: u.Total})
		}
	}
}
