package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/reel/internal/clipboard"
	"github.com/justchokingaround/reel/internal/config"
	"github.com/justchokingaround/reel/internal/database"
	"github.com/justchokingaround/reel/internal/history"
	"github.com/justchokingaround/reel/internal/metrics"
	"github.com/justchokingaround/reel/internal/nav"
	"github.com/justchokingaround/reel/internal/player"
	"github.com/justchokingaround/reel/internal/providers"
	"github.com/justchokingaround/reel/internal/tui/components/search"
	"github.com/justchokingaround/reel/internal/tui/styles"
)

// LocationKey is the settings key holding the last location
const LocationKey = "location"

const statusTimeout = 4 * time.Second

// Rows above the list body: title, tabs, blank, search box, blank
const headerHeight = 5

// Rows below the list body: status bar and help line
const footerHeight = 2

// clearStatusMsg clears the status line if it is still the one with id
type clearStatusMsg struct{ id int }

// lastPlayedMsg carries the newest history entry after startup or a play
type lastPlayedMsg struct {
	entry *database.PlaybackHistory
	err   error
}

// ConfigReloadedMsg is sent by the config watcher after the file changed
type ConfigReloadedMsg struct {
	Config *config.Config
}

// Options wires an App
type Options struct {
	Provider  providers.Provider
	Player    *player.Controller
	Config    *config.Config
	History   *history.Service
	Settings  *database.SettingsStore
	Clipboard *clipboard.Service
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	// Start is the location applied on Init
	Start nav.Location
}

// App is the root bubbletea model. It draws the navigation controller's
// state and implements nav.Surface for it.
type App struct {
	nav       *nav.Controller
	keys      KeyMap
	search    search.Model
	spinner   spinner.Model
	help      help.Model
	viewport  viewport.Model
	history   *history.Service
	settings  *database.SettingsStore
	clipboard *clipboard.Service
	logger    *slog.Logger
	start     nav.Location

	width  int
	height int

	// offsets is the first visible row per list region
	offsets map[nav.Region]int
	visible nav.Region

	playErr    error
	lastPlayed *database.PlaybackHistory

	status   string
	statusID int
	quitting bool
}

func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.NewService(cfg.Clipboard.Command, logger)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)

	a := &App{
		keys:      DefaultKeyMap(),
		search:    search.New(),
		spinner:   sp,
		help:      help.New(),
		viewport:  viewport.New(80, 20),
		history:   opts.History,
		settings:  opts.Settings,
		clipboard: clip,
		logger:    logger.With("component", "tui"),
		start:     opts.Start,
		offsets:   make(map[nav.Region]int),
	}
	a.nav = nav.New(nav.Options{
		Provider: opts.Provider,
		Player:   opts.Player,
		Surface:  a,
		Debounce: cfg.Search.Debounce,
		Metrics:  opts.Metrics,
		Logger:   logger,
	})
	return a
}

func (a *App) Init() tea.Cmd {
	a.search.SetValue(a.start.Search)
	return tea.Batch(
		a.nav.Start(a.start),
		a.spinner.Tick,
		a.loadLastPlayed(),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.SetWidth(msg.Width)
		a.help.Width = msg.Width
		a.viewport.Width = msg.Width
		a.viewport.Height = a.bodyHeight()
		for _, r := range []nav.Region{nav.RegionMovies, nav.RegionCollections, nav.RegionSubItems} {
			if l := a.nav.List(r); l != nil {
				a.ScrollTo(r, l.Focused())
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case nav.SearchCommittedMsg:
		cmd := a.nav.Update(msg)
		a.saveLocation(a.nav.Location())
		return a, cmd

	case player.PlaybackStartedMsg:
		a.playErr = nil
		return a, a.recordPlay(msg.NowPlaying)

	case lastPlayedMsg:
		if msg.err != nil {
			a.logger.Warn("failed to read playback history", "error", msg.err)
			return a, nil
		}
		a.lastPlayed = msg.entry
		return a, nil

	case clipboard.CopiedMsg:
		if msg.Err != nil {
			return a, a.setStatus("Copy failed: " + msg.Err.Error())
		}
		return a, a.setStatus("Copied stream URL")

	case openedMsg:
		if msg.err != nil {
			return a, a.setStatus("Could not open browser: " + msg.err.Error())
		}
		return a, a.setStatus("Opened in browser")

	case clearStatusMsg:
		if msg.id == a.statusID {
			a.status = ""
		}
		return a, nil

	case ConfigReloadedMsg:
		a.applyConfig(msg.Config)
		return a, a.setStatus("Configuration reloaded")
	}

	return a, a.nav.Update(msg)
}

// Surface implementation

func (a *App) Show(region nav.Region) {
	a.visible = region
	if region == nav.RegionPlayer {
		a.playErr = nil
	}
}

func (a *App) ScrollTo(region nav.Region, index int) {
	h := a.bodyHeight()
	off := a.offsets[region]
	switch {
	case index < off:
		off = index
	case index >= off+h:
		off = index - h + 1
	}
	a.offsets[region] = max(off, 0)
}

func (a *App) FocusSearch(focused bool) {
	if focused {
		a.search.Focus()
		return
	}
	a.search.Blur()
}

func (a *App) ReplaceLocation(loc nav.Location) {
	a.saveLocation(loc)
}

func (a *App) Report(err error) {
	a.playErr = err
	a.status = err.Error()
}

func (a *App) saveLocation(loc nav.Location) {
	if a.settings == nil {
		return
	}
	if err := a.settings.Set(LocationKey, loc.String()); err != nil {
		a.logger.Warn("failed to save location", "location", loc.String(), "error", err)
	}
}

func (a *App) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.nav.SetDebounce(cfg.Search.Debounce)
	a.logger.Info("config applied", "debounce", cfg.Search.Debounce)
}

func (a *App) setStatus(text string) tea.Cmd {
	a.statusID++
	id := a.statusID
	a.status = text
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (a *App) recordPlay(np player.NowPlaying) tea.Cmd {
	if a.history == nil {
		return nil
	}
	h := a.history
	return func() tea.Msg {
		if err := h.Record(np); err != nil {
			return lastPlayedMsg{err: err}
		}
		entry, err := h.Last()
		return lastPlayedMsg{entry: entry, err: err}
	}
}

func (a *App) loadLastPlayed() tea.Cmd {
	if a.history == nil {
		return nil
	}
	h := a.history
	return func() tea.Msg {
		entry, err := h.Last()
		return lastPlayedMsg{entry: entry, err: err}
	}
}

func (a *App) bodyHeight() int {
	if a.height == 0 {
		return 20
	}
	return max(a.height-headerHeight-footerHeight, 1)
}

// Navigation exposes the controller, mainly for tests
func (a *App) Navigation() *nav.Controller {
	return a.nav
}
