package search

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/reel/internal/tui/styles"
)

// Model is the search field shown above every catalog
type Model struct {
	textInput textinput.Model
	width     int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "type to search"
	ti.Prompt = "/ "
	ti.CharLimit = 200
	ti.Width = 60

	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)
	ti.PlaceholderStyle = styles.MetadataStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)

	return Model{textInput: ti}
}

// Update forwards msg to the text input. changed reports whether the value
// was edited.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd, bool) {
	before := m.textInput.Value()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd, m.textInput.Value() != before
}

func (m Model) View() string {
	style := styles.SearchBoxStyle
	if m.textInput.Focused() {
		style = styles.SearchBoxFocusedStyle
	}
	return style.Render(m.textInput.View())
}

func (m *Model) Focus() tea.Cmd {
	return m.textInput.Focus()
}

func (m *Model) Blur() {
	m.textInput.Blur()
}

func (m Model) Focused() bool {
	return m.textInput.Focused()
}

// SetWidth sizes the input to the terminal width
func (m *Model) SetWidth(width int) {
	m.width = width
	if width > 10 {
		m.textInput.Width = width - 10
	}
}

// SetValue sets the value of the search input
func (m *Model) SetValue(value string) {
	m.textInput.SetValue(value)
}

// Value returns the value of the search input
func (m Model) Value() string {
	return m.textInput.Value()
}
