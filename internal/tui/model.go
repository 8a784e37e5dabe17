// Package tui implements an interactive phase explorer: the user edits the
// digits of a phase and sees its index, packed form and evaluated vector
// update live, and can sweep the current digit length in the background.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/b13phase/internal/errors"
	"github.com/agbru/b13phase/internal/format"
	"github.com/agbru/b13phase/internal/phase"
	"github.com/agbru/b13phase/internal/sweep"
)

// maxExplorerDigits bounds the width the explorer lets the user reach.
const maxExplorerDigits = 64

// Options configures an explorer session.
type Options struct {
	Digits  int
	Samples int
	Workers int
	Table   phase.Level0
	Version string
}

// SweepProgressMsg reports background sweep progress.
type SweepProgressMsg struct {
	Done, Total int
}

// SweepDoneMsg carries the outcome of a background sweep.
type SweepDoneMsg struct {
	Result sweep.Result
	Err    error
}

// Model is the root bubbletea model of the explorer.
type Model struct {
	opts   Options
	ctx    context.Context
	ref    *programRef
	keymap KeyMap
	help   help.Model

	digits phase.Digits
	cursor int
	steps  []phase.Vector
	err    error

	sweeping   bool
	sweepDone  int
	sweepTotal int
	lastSweep  *sweep.Result
	sweepErr   error

	width, height int
}

// NewModel returns an explorer positioned at the zero phase.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Digits < 1 {
		opts.Digits = 1
	}
	d, _ := phase.Zero(opts.Digits)
	m := Model{
		opts:   opts,
		ctx:    ctx,
		ref:    &programRef{},
		keymap: DefaultKeyMap(),
		help:   help.New(),
		digits: d,
	}
	m.evaluate()
	return m
}

// Digits returns the phase currently shown.
func (m Model) Digits() phase.Digits { return m.digits.Clone() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case SweepProgressMsg:
		m.sweepDone, m.sweepTotal = msg.Done, msg.Total
		return m, nil
	case SweepDoneMsg:
		m.sweeping = false
		m.sweepErr = msg.Err
		if msg.Err == nil {
			res := msg.Result
			m.lastSweep = &res
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Right):
		if m.cursor < len(m.digits)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Up):
		m.step(1)
	case key.Matches(msg, m.keymap.Down):
		m.step(-1)
	case key.Matches(msg, m.keymap.PageUp):
		m.step(phase.Base / 4)
	case key.Matches(msg, m.keymap.PageDown):
		m.step(-phase.Base / 4)
	case key.Matches(msg, m.keymap.Widen):
		if len(m.digits) < maxExplorerDigits {
			m.digits = append(m.digits.Clone(), 0)
			m.evaluate()
		}
	case key.Matches(msg, m.keymap.Narrow):
		if len(m.digits) > 1 {
			m.digits = m.digits[:len(m.digits)-1].Clone()
			m.cursor = min(m.cursor, len(m.digits)-1)
			m.evaluate()
		}
	case key.Matches(msg, m.keymap.Zero):
		m.digits, _ = phase.Zero(len(m.digits))
		m.evaluate()
	case key.Matches(msg, m.keymap.Sweep):
		if !m.sweeping {
			m.sweeping = true
			m.sweepDone, m.sweepTotal = 0, m.opts.Samples
			return m, startSweepCmd(m.ctx, m.ref, m.sweepOptions())
		}
	}
	return m, nil
}

// step adds delta units at the cursor digit, carrying into and wrapping
// around the coarser digits. |delta| must be below Base.
func (m *Model) step(delta int) {
	n := len(m.digits)
	operand := make(phase.Digits, n)
	if delta >= 0 {
		operand[m.cursor] = delta
	} else {
		// Base^n - |delta|*W, with W the weight of the cursor digit.
		for i := 0; i < m.cursor; i++ {
			operand[i] = phase.MaxDigit
		}
		operand[m.cursor] = phase.Base + delta
	}
	sum, _, err := phase.Add(m.digits, operand)
	if err != nil {
		m.err = err
		return
	}
	m.digits = sum
	m.evaluate()
}

func (m *Model) evaluate() {
	m.steps, m.err = phase.EvaluateSteps(m.digits, m.opts.Table)
}

func (m Model) sweepOptions() sweep.Options {
	return sweep.Options{
		Digits:  len(m.digits),
		Samples: m.opts.Samples,
		Workers: m.opts.Workers,
		Table:   m.opts.Table,
	}
}

func startSweepCmd(ctx context.Context, ref *programRef, opts sweep.Options) tea.Cmd {
	return func() tea.Msg {
		res, err := sweep.Run(ctx, opts, &TUIProgressReporter{ref: ref}, io.Discard)
		return SweepDoneMsg{Result: res, Err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	title := titleStyle.Render("b13phase explorer")
	if m.opts.Version != "" {
		title += " " + dimStyle.Render(m.opts.Version)
	}
	b.WriteString(title + "\n\n")

	cells := make([]string, len(m.digits))
	for i, v := range m.digits {
		s := fmt.Sprintf("%4d", v)
		if i == m.cursor {
			cells[i] = cursorStyle.Render(s)
		} else {
			cells[i] = digitStyle.Render(s)
		}
	}
	b.WriteString(row("digits", lipgloss.JoinHorizontal(lipgloss.Top, cells...)))

	if idx, err := phase.ToInt(m.digits); err == nil {
		b.WriteString(row("index", format.FormatBigGrouped(idx)))
	}
	res := phase.ResolutionFor(len(m.digits))
	b.WriteString(row("resolution", fmt.Sprintf("%s phases, %s per step",
		format.FormatBigGrouped(res.Subdivisions), format.FormatDegrees(res.DegreesPerStep))))
	if len(m.digits) == phase.PackedDigits {
		if p, err := phase.Pack(m.digits); err == nil {
			b.WriteString(row("packed", p.String()))
		}
	}

	if m.err != nil {
		b.WriteString(row("error", errorStyle.Render(m.err.Error())))
	} else if len(m.steps) > 0 {
		v := m.steps[len(m.steps)-1]
		b.WriteString(row("vector", successStyle.Render(v.String())))
		ratio := format.FormatRatio(v.MagnitudeRatio())
		if r := v.MagnitudeRatio(); r < 0.99 || r > 1.01 {
			ratio = warnStyle.Render(ratio)
		}
		b.WriteString(row("|v|²/BASE²", ratio))
	}

	b.WriteString(row("sweep", m.sweepStatus()))
	body := panelStyle.Render(strings.TrimRight(b.String(), "\n"))
	return body + "\n" + m.help.View(m.keymap)
}

func (m Model) sweepStatus() string {
	switch {
	case m.sweeping:
		frac := 0.0
		if m.sweepTotal > 0 {
			frac = float64(m.sweepDone) / float64(m.sweepTotal)
		}
		return format.ProgressBar(frac, 20) + fmt.Sprintf(" %d/%d", m.sweepDone, m.sweepTotal)
	case m.sweepErr != nil:
		return errorStyle.Render(m.sweepErr.Error())
	case m.lastSweep != nil:
		st := m.lastSweep.Stats
		return fmt.Sprintf("n=%d min %s max %s mean %s", m.lastSweep.Digits,
			format.FormatRatio(st.Min), format.FormatRatio(st.Max), format.FormatRatio(st.Mean))
	default:
		return dimStyle.Render("press s to sweep")
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// Run starts the explorer and blocks until the user quits.
func Run(ctx context.Context, opts Options) int {
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitSuccess
}
