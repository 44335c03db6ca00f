package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/reel/internal/nav"
)

// KeyMap holds every binding of the browser. Letters are never bound because
// typing anywhere starts a search.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Back  key.Binding
	Tab   key.Binding
	Copy  key.Binding
	Open  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "movies")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "series")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/play")),
		Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle search")),
		Copy:  key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy stream url")),
		Open:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open in browser")),
		Help:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Back, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Left, k.Right, k.Tab},
		{k.Copy, k.Open, k.Help, k.Quit},
	}
}

// Translate maps a terminal key event onto the navigation keys
func (k KeyMap) Translate(msg tea.KeyMsg) nav.Key {
	switch {
	case key.Matches(msg, k.Up):
		return nav.KeyUp
	case key.Matches(msg, k.Down):
		return nav.KeyDown
	case key.Matches(msg, k.Left):
		return nav.KeyLeft
	case key.Matches(msg, k.Right):
		return nav.KeyRight
	case key.Matches(msg, k.Enter):
		return nav.KeyEnter
	case key.Matches(msg, k.Back):
		return nav.KeyEscape
	case key.Matches(msg, k.Tab):
		return nav.KeyTab
	}
	if msg.Type == tea.KeyRunes && !msg.Alt || msg.Type == tea.KeySpace {
		return nav.KeyPrintable
	}
	return nav.KeyNone
}
