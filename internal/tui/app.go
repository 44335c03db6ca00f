package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram wraps app in a full-screen program with mouse support. The
// caller may Send ConfigReloadedMsg to it while it runs.
func NewProgram(app *App) *tea.Program {
	return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

// Run blocks until the user quits
func Run(p *tea.Program) error {
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
