package nav

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is the quiet period before typed text becomes a query
const DefaultDebounce = 300 * time.Millisecond

// SearchState is a snapshot of the search field
type SearchState struct {
	Raw       string
	Committed string
	Pending   bool
	Seq       uint64
}

// Search debounces keystrokes into committed queries. A timer is a tea.Tick
// tagged with a sequence number; bumping the sequence cancels it.
type Search struct {
	delay time.Duration
	state SearchState
}

func NewSearch(delay time.Duration) *Search {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Search{delay: delay}
}

// Input records the field text and restarts the debounce timer
func (s *Search) Input(text string) tea.Cmd {
	s.state.Raw = text
	s.state.Seq++
	s.state.Pending = true
	seq := s.state.Seq
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return SearchTickMsg{Seq: seq}
	})
}

// Tick handles a fired timer. Only the latest timer commits; the returned
// command emits SearchCommittedMsg.
func (s *Search) Tick(msg SearchTickMsg) tea.Cmd {
	if !s.state.Pending || msg.Seq != s.state.Seq {
		return nil
	}
	s.state.Pending = false
	s.state.Committed = strings.TrimSpace(s.state.Raw)
	query := s.state.Committed
	return func() tea.Msg {
		return SearchCommittedMsg{Query: query}
	}
}

// Clear empties the field and cancels any pending timer without emitting
func (s *Search) Clear() {
	s.state.Seq++
	s.state.Pending = false
	s.state.Raw = ""
	s.state.Committed = ""
}

// SetValue fills the field without starting a timer. The caller loads.
func (s *Search) SetValue(text string) {
	s.state.Seq++
	s.state.Pending = false
	s.state.Raw = text
	s.state.Committed = strings.TrimSpace(text)
}

// SetDelay changes the debounce period for timers started afterwards
func (s *Search) SetDelay(d time.Duration) {
	if d > 0 {
		s.delay = d
	}
}

func (s *Search) Delay() time.Duration { return s.delay }
func (s *Search) Raw() string          { return s.state.Raw }
func (s *Search) Committed() string    { return s.state.Committed }
func (s *Search) Pending() bool        { return s.state.Pending }
func (s *Search) State() SearchState   { return s.state }
