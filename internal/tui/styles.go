package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/b13phase/internal/ui"
)

var (
	panelStyle   lipgloss.Style
	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	digitStyle   lipgloss.Style
	cursorStyle  lipgloss.Style
	dimStyle     lipgloss.Style
	warnStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	successStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles from the current ui theme. Run calls it
// again after the application has chosen the theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text)
	digitStyle = lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Digit).Underline(true).Padding(0, 1)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	warnStyle = lipgloss.NewStyle().Foreground(t.Warning)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
}
