package nav

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/metrics"
	"github.com/justchokingaround/reel/internal/player"
	"github.com/justchokingaround/reel/internal/providers"
)

// NavigationState is the visible region and the context needed to leave it.
// Collection is set only in SubItems or in a Player entered from SubItems.
type NavigationState struct {
	Active        Region
	Collection    *catalog.Collection
	ReturnTo      Region
	SearchFocused bool
}

// Options wires a Controller
type Options struct {
	Provider providers.Provider
	Player   *player.Controller
	Surface  Surface
	Debounce time.Duration
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Controller is the navigation state machine. It is not safe for concurrent
// use; call it from the bubbletea Update loop only.
type Controller struct {
	state    NavigationState
	movies   *List
	series   *List
	subItems *List
	search   *Search
	player   *player.Controller
	surface  Surface
	logger   *slog.Logger
}

func New(opts Options) *Controller {
	if opts.Surface == nil {
		opts.Surface = NopSurface{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Player == nil {
		opts.Player = player.NewController(opts.Provider, nil, opts.Logger, opts.Metrics)
	}

	p := opts.Provider
	scroll := opts.Surface.ScrollTo
	c := &Controller{
		state:   NavigationState{Active: RegionMovies, ReturnTo: RegionMovies},
		search:  NewSearch(opts.Debounce),
		player:  opts.Player,
		surface: opts.Surface,
		logger:  opts.Logger,
	}
	c.movies = NewList(RegionMovies, func(ctx context.Context, q string) (catalog.Page, error) {
		if q == "" {
			return p.ListStandalone(ctx)
		}
		return p.SearchStandalone(ctx, q)
	}, scroll, opts.Metrics)
	c.series = NewList(RegionCollections, func(ctx context.Context, q string) (catalog.Page, error) {
		if q == "" {
			return p.ListCollections(ctx)
		}
		return p.SearchCollections(ctx, q)
	}, scroll, opts.Metrics)
	c.subItems = NewList(RegionSubItems, func(ctx context.Context, id string) (catalog.Page, error) {
		col, err := p.CollectionDetail(ctx, id)
		if err != nil {
			return catalog.Page{}, err
		}
		items := catalog.Flatten(col)
		return catalog.Page{Items: items, Total: len(items)}, nil
	}, scroll, opts.Metrics)
	return c
}

// Start applies the startup location: the search field is filled without a
// debounce and the matching home region is loaded with that filter
func (c *Controller) Start(loc Location) tea.Cmd {
	c.search.SetValue(loc.Search)
	region := loc.Region()
	c.state = NavigationState{Active: region, ReturnTo: region}
	c.surface.Show(region)
	c.logger.Debug("starting", "region", region, "search", c.search.Committed())
	return c.list(region).Load(c.search.Committed())
}

// Update handles the messages produced by the Controller's own commands
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ListLoadedMsg:
		l := c.list(msg.Region)
		if l == nil {
			return nil
		}
		if !l.Apply(msg) {
			c.logger.Debug("dropped stale response", "region", msg.Region, "token", msg.Token)
			return nil
		}
		if err := l.Err(); err != nil {
			c.logger.Error("load failed", "region", msg.Region, "error", err)
		}
	case SearchTickMsg:
		return c.search.Tick(msg)
	case SearchCommittedMsg:
		return c.onCommitted(msg.Query)
	case player.PlaybackFailedMsg:
		c.surface.Report(msg.Err)
	}
	return nil
}

// Input feeds the search field text
func (c *Controller) Input(text string) tea.Cmd {
	return c.search.Input(text)
}

func (c *Controller) onCommitted(query string) tea.Cmd {
	if !c.state.Active.Home() {
		c.logger.Debug("query stored outside a catalog", "region", c.state.Active, "query", query)
		return nil
	}
	return c.list(c.state.Active).Load(query)
}

// SwitchTo opens a home region: the search is cleared, playback stops and
// the region reloads unfiltered. The view location is rewritten.
func (c *Controller) SwitchTo(region Region) tea.Cmd {
	if !region.Home() {
		return nil
	}
	c.search.Clear()
	if c.state.Active == RegionPlayer || c.player.NowPlaying() != nil {
		c.player.Stop()
	}
	c.subItems.Reset()
	c.state.Active = region
	c.state.ReturnTo = region
	c.state.Collection = nil
	c.surface.Show(region)
	c.surface.ReplaceLocation(Location{View: ViewOf(region)})
	return c.list(region).Load("")
}

// Select acts on an item chosen by Enter or a click
func (c *Controller) Select(item catalog.Item) tea.Cmd {
	switch {
	case c.state.Active == RegionCollections && item.Kind == catalog.KindCollection && item.Collection != nil:
		return c.openCollection(item.Collection)
	case c.state.Active == RegionMovies && item.Kind == catalog.KindStandalone:
		return c.play(item, nil, RegionMovies)
	case c.state.Active == RegionSubItems && item.Kind == catalog.KindSubItem:
		return c.play(item, c.state.Collection, RegionSubItems)
	}
	c.logger.Debug("ignoring selection", "region", c.state.Active, "kind", item.Kind)
	return nil
}

// SelectFocused selects the item under the active region's cursor
func (c *Controller) SelectFocused() tea.Cmd {
	l := c.list(c.state.Active)
	if l == nil {
		return nil
	}
	item, ok := l.SelectFocused()
	if !ok {
		return nil
	}
	return c.Select(item)
}

// SelectByClick selects row i of the active region without moving its cursor
func (c *Controller) SelectByClick(i int) tea.Cmd {
	l := c.list(c.state.Active)
	if l == nil {
		return nil
	}
	item, ok := l.SelectByClick(i)
	if !ok {
		return nil
	}
	return c.Select(item)
}

func (c *Controller) openCollection(col *catalog.Collection) tea.Cmd {
	c.state.Collection = col
	c.state.Active = RegionSubItems
	c.surface.Show(RegionSubItems)
	if len(col.Seasons) > 0 {
		c.subItems.Replace(catalog.Flatten(col))
		return nil
	}
	return c.subItems.Load(col.ID)
}

func (c *Controller) play(item catalog.Item, col *catalog.Collection, from Region) tea.Cmd {
	c.state.ReturnTo = from
	c.state.Active = RegionPlayer
	c.surface.Show(RegionPlayer)
	return c.player.Play(player.Request{Item: item, Collection: col})
}

// Back leaves Player for its predecessor or SubItems for Collections. It is
// a no-op on the home regions. A query committed while away is applied to the
// home region on return.
func (c *Controller) Back() tea.Cmd {
	switch c.state.Active {
	case RegionPlayer:
		c.player.Stop()
		c.state.Active = c.state.ReturnTo
		if c.state.Active != RegionSubItems {
			c.state.Collection = nil
		}
		c.surface.Show(c.state.Active)
		return c.refreshHome()
	case RegionSubItems:
		c.subItems.Reset()
		c.state.Collection = nil
		c.state.Active = RegionCollections
		c.state.ReturnTo = RegionCollections
		c.surface.Show(RegionCollections)
		return c.refreshHome()
	}
	return nil
}

// refreshHome reloads the active home region when it was last loaded with a
// query other than the committed one
func (c *Controller) refreshHome() tea.Cmd {
	if !c.state.Active.Home() {
		return nil
	}
	l := c.list(c.state.Active)
	committed := c.search.Committed()
	if l.Query() == committed {
		return nil
	}
	return l.Load(committed)
}

// MoveFocus moves the active region's cursor
func (c *Controller) MoveFocus(dir Direction) {
	if l := c.list(c.state.Active); l != nil {
		l.MoveFocus(dir)
	}
}

// SetSearchFocus records whether the search field holds input focus
func (c *Controller) SetSearchFocus(focused bool) {
	if c.state.SearchFocused == focused {
		return
	}
	c.state.SearchFocused = focused
	c.surface.FocusSearch(focused)
}

// HandleKey routes one key. handled is false when the key should still be
// delivered to the search field.
func (c *Controller) HandleKey(k Key) (cmd tea.Cmd, handled bool) {
	switch k {
	case KeyPrintable:
		if !c.state.SearchFocused {
			c.SetSearchFocus(true)
		}
		return nil, false
	case KeyTab:
		c.SetSearchFocus(!c.state.SearchFocused)
		return nil, true
	case KeyEscape:
		if c.state.Active == RegionPlayer || c.state.Active == RegionSubItems {
			return c.Back(), true
		}
		if c.state.SearchFocused {
			c.SetSearchFocus(false)
			return nil, true
		}
		return nil, true
	case KeyUp, KeyDown:
		if c.state.SearchFocused {
			return nil, false
		}
		dir := Down
		if k == KeyUp {
			dir = Up
		}
		c.MoveFocus(dir)
		return nil, true
	case KeyEnter:
		return c.SelectFocused(), true
	case KeyLeft, KeyRight:
		if c.state.Active == RegionPlayer {
			return nil, false
		}
		if k == KeyLeft {
			return c.SwitchTo(RegionMovies), true
		}
		return c.SwitchTo(RegionCollections), true
	}
	return nil, false
}

// SetDebounce changes the search debounce for timers started afterwards
func (c *Controller) SetDebounce(d time.Duration) {
	c.search.SetDelay(d)
}

func (c *Controller) list(r Region) *List {
	switch r {
	case RegionMovies:
		return c.movies
	case RegionCollections:
		return c.series
	case RegionSubItems:
		return c.subItems
	}
	return nil
}

// List returns the list backing r, nil for the player
func (c *Controller) List(r Region) *List { return c.list(r) }

// State returns a copy of the navigation state
func (c *Controller) State() NavigationState { return c.state }

func (c *Controller) Active() Region             { return c.state.Active }
func (c *Controller) Search() *Search            { return c.search }
func (c *Controller) Player() *player.Controller { return c.player }

// Location is the current view and committed query
func (c *Controller) Location() Location {
	region := c.state.Active
	if !region.Home() {
		region = RegionCollections
		if c.state.ReturnTo == RegionMovies {
			region = RegionMovies
		}
	}
	return Location{View: ViewOf(region), Search: c.search.Committed()}
}
