package nav

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDebounceCoalesces(t *testing.T) {
	s := NewSearch(5 * time.Millisecond)

	var timers []tea.Cmd
	for _, text := range []string{"d", "da", "dar", "dark", " dark "} {
		timers = append(timers, s.Input(text))
	}
	assert.True(t, s.Pending())
	assert.Equal(t, "", s.Committed())

	var committed []SearchCommittedMsg
	for _, timer := range timers {
		tick, ok := timer().(SearchTickMsg)
		require.True(t, ok)
		if cmd := s.Tick(tick); cmd != nil {
			committed = append(committed, cmd().(SearchCommittedMsg))
		}
	}

	require.Len(t, committed, 1)
	assert.Equal(t, "dark", committed[0].Query)
	assert.Equal(t, "dark", s.Committed())
	assert.Equal(t, " dark ", s.Raw())
	assert.False(t, s.Pending())
}

func TestSearchClear(t *testing.T) {
	s := NewSearch(time.Millisecond)
	timer := s.Input("dark")

	s.Clear()
	assert.Equal(t, "", s.Raw())
	assert.Equal(t, "", s.Committed())
	assert.False(t, s.Pending())

	tick := timer().(SearchTickMsg)
	assert.Nil(t, s.Tick(tick), "cleared timer must not fire")
}

func TestSearchSetValue(t *testing.T) {
	s := NewSearch(time.Millisecond)
	timer := s.Input("abc")

	s.SetValue("  dark ")
	assert.Equal(t, "  dark ", s.Raw())
	assert.Equal(t, "dark", s.Committed())
	assert.False(t, s.Pending())
	assert.Nil(t, s.Tick(timer().(SearchTickMsg)))
}

func TestSearchEmptyCommit(t *testing.T) {
	s := NewSearch(time.Millisecond)
	s.SetValue("dark")

	cmd := s.Tick(s.Input("   ")().(SearchTickMsg))
	require.NotNil(t, cmd)
	assert.Equal(t, SearchCommittedMsg{Query: ""}, cmd())
}

func TestSearchDelay(t *testing.T) {
	assert.Equal(t, DefaultDebounce, NewSearch(0).Delay())

	s := NewSearch(time.Second)
	s.SetDelay(50 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, s.Delay())
	s.SetDelay(-1)
	assert.Equal(t, 50*time.Millisecond, s.Delay())
}
