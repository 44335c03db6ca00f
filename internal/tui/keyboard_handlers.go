package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/reel/internal/nav"
	"github.com/justchokingaround/reel/internal/player"
)

// openedMsg reports the outcome of opening a URL in the browser
type openedMsg struct{ err error }

// handleKeyMsg processes all keyboard input. Global bindings come first,
// then the navigation controller decides, and whatever it leaves unhandled
// goes to the search field while it has focus.
func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil
	case key.Matches(msg, a.keys.Copy):
		np := a.nav.Player().NowPlaying()
		if np == nil {
			return a.setStatus("Nothing is playing")
		}
		return a.clipboard.Copy(np.Source)
	case key.Matches(msg, a.keys.Open):
		np := a.nav.Player().NowPlaying()
		if np == nil {
			return a.setStatus("Nothing is playing")
		}
		source := np.Source
		return func() tea.Msg { return openedMsg{err: player.OpenURL(source)} }
	}

	cmd, handled := a.nav.HandleKey(a.keys.Translate(msg))
	// switching catalogs clears the query
	if raw := a.nav.Search().Raw(); raw != a.search.Value() {
		a.search.SetValue(raw)
	}
	if handled || !a.search.Focused() {
		return cmd
	}

	var inputCmd tea.Cmd
	var changed bool
	a.search, inputCmd, changed = a.search.Update(msg)
	if changed {
		return tea.Batch(cmd, inputCmd, a.nav.Input(a.search.Value()))
	}
	return tea.Batch(cmd, inputCmd)
}

// handleMouse turns a left click on a row into a selection and the wheel
// into focus moves
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.nav.Active() == nav.RegionPlayer {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.nav.MoveFocus(nav.Up)
		return nil
	case tea.MouseButtonWheelDown:
		a.nav.MoveFocus(nav.Down)
		return nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		row := msg.Y - headerHeight
		if row < 0 || row >= a.bodyHeight() {
			return nil
		}
		return a.nav.SelectByClick(a.offsets[a.nav.Active()] + row)
	}
	return nil
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.nav.Player().Stop()
	a.saveLocation(a.nav.Location())
	return tea.Quit
}
