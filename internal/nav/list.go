package nav

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/metrics"
)

// Fetcher produces the items of a list. An empty query means unfiltered.
type Fetcher func(ctx context.Context, query string) (catalog.Page, error)

// RegionState is a snapshot of one list
type RegionState struct {
	Status  Status
	Items   []catalog.Item
	Focused int
	Token   uint64
	Total   int
	Err     error
}

// List is the selectable item sequence of one region
type List struct {
	region  Region
	fetch   Fetcher
	scroll  func(Region, int)
	metrics *metrics.Metrics

	state  RegionState
	query  string
	cancel context.CancelFunc
}

// NewList creates an idle list. scroll may be nil.
func NewList(region Region, fetch Fetcher, scroll func(Region, int), m *metrics.Metrics) *List {
	if scroll == nil {
		scroll = func(Region, int) {}
	}
	return &List{
		region:  region,
		fetch:   fetch,
		scroll:  scroll,
		metrics: m,
		state:   RegionState{Focused: -1},
	}
}

// Load resets the list to Loading under a fresh token and returns the command
// that performs the fetch. A load still in flight is cancelled.
func (l *List) Load(query string) tea.Cmd {
	token := l.invalidate()
	l.state.Status = StatusLoading
	l.query = query

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	fetch := l.fetch
	region := l.region
	started := time.Now()
	l.metrics.LoadStarted(region.String())

	return func() tea.Msg {
		page, err := fetch(ctx, query)
		return ListLoadedMsg{
			Region:  region,
			Token:   token,
			Page:    page,
			Err:     err,
			Elapsed: time.Since(started),
		}
	}
}

// Apply installs a load result. It reports false and changes nothing when
// msg was issued before the latest Load, Replace or Reset.
func (l *List) Apply(msg ListLoadedMsg) bool {
	if msg.Region != l.region {
		return false
	}
	if msg.Token != l.state.Token || l.state.Status != StatusLoading {
		l.metrics.StaleResponse(l.region.String())
		return false
	}
	l.release()
	l.metrics.LoadFinished(l.region.String(), msg.Elapsed, msg.Err)

	if msg.Err != nil {
		l.state.Status = StatusError
		l.state.Err = &LoadError{Region: l.region, Err: msg.Err}
		return true
	}
	l.set(msg.Page.Items, msg.Page.Total)
	return true
}

// Replace installs items directly, superseding any load in flight
func (l *List) Replace(items []catalog.Item) {
	l.invalidate()
	l.set(items, len(items))
}

// Reset returns the list to Idle and drops any load in flight
func (l *List) Reset() {
	l.invalidate()
}

func (l *List) invalidate() uint64 {
	l.release()
	l.query = ""
	l.state.Token++
	l.state.Status = StatusIdle
	l.state.Items = nil
	l.state.Focused = -1
	l.state.Total = 0
	l.state.Err = nil
	return l.state.Token
}

func (l *List) release() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *List) set(items []catalog.Item, total int) {
	l.state.Items = items
	l.state.Total = total
	if total < len(items) {
		l.state.Total = len(items)
	}
	l.state.Focused = -1
	if len(items) == 0 {
		l.state.Status = StatusEmpty
	} else {
		l.state.Status = StatusLoaded
	}
}

// MoveFocus steps the cursor one row, clamping at both ends. Down from
// nothing focused lands on the first row; Up from nothing is ignored.
func (l *List) MoveFocus(dir Direction) bool {
	n := len(l.state.Items)
	if n == 0 {
		return false
	}
	next := l.state.Focused
	switch dir {
	case Down:
		if next < n-1 {
			next++
		}
	case Up:
		if next > 0 {
			next--
		}
	}
	return l.focus(next)
}

// SetFocus moves the cursor to i, clamped into [-1, len-1]
func (l *List) SetFocus(i int) bool {
	n := len(l.state.Items)
	switch {
	case i < -1:
		i = -1
	case i > n-1:
		i = n - 1
	}
	return l.focus(i)
}

func (l *List) focus(i int) bool {
	if i == l.state.Focused {
		return false
	}
	l.state.Focused = i
	if i >= 0 {
		l.scroll(l.region, i)
	}
	return true
}

// SelectFocused returns the item under the cursor
func (l *List) SelectFocused() (catalog.Item, bool) {
	return l.SelectByClick(l.state.Focused)
}

// SelectByClick returns the item on row i without moving the cursor
func (l *List) SelectByClick(i int) (catalog.Item, bool) {
	if i < 0 || i >= len(l.state.Items) {
		return catalog.Item{}, false
	}
	return l.state.Items[i], true
}

func (l *List) Region() Region        { return l.region }
func (l *List) Query() string         { return l.query }
func (l *List) Status() Status        { return l.state.Status }
func (l *List) Items() []catalog.Item { return l.state.Items }
func (l *List) Focused() int          { return l.state.Focused }
func (l *List) Total() int            { return l.state.Total }
func (l *List) Token() uint64         { return l.state.Token }
func (l *List) Err() error            { return l.state.Err }

// State returns a copy of the list state
func (l *List) State() RegionState {
	return l.state
}
