package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/justchokingaround/reel/internal/clipboard"
	"github.com/justchokingaround/reel/internal/config"
	"github.com/justchokingaround/reel/internal/database"
	"github.com/justchokingaround/reel/internal/history"
	"github.com/justchokingaround/reel/internal/metrics"
	"github.com/justchokingaround/reel/internal/nav"
	"github.com/justchokingaround/reel/internal/player"
	"github.com/justchokingaround/reel/internal/player/mpv"
	"github.com/justchokingaround/reel/internal/providers"
	"github.com/justchokingaround/reel/internal/providers/api"
	"github.com/justchokingaround/reel/internal/tui"
)

var (
	viewFlag     string
	searchFlag   string
	locationFlag string
	providerFlag string
	playerFlag   string
)

// runBrowser starts the interactive catalog browser
func runBrowser(cmd *cobra.Command, args []string) error {
	if providerFlag != "" {
		cfg.Provider.Backend = providerFlag
	}
	if playerFlag != "" {
		cfg.Player.Backend = playerFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, err := providers.FromConfig(&cfg.Provider, logger)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	logger.Info("using provider", "provider", provider.Name())

	sink, err := newSink(&cfg.Player)
	if err != nil {
		return err
	}

	start, err := explicitLocation(cmd)
	if err != nil {
		return err
	}

	m := metrics.New()
	settings := database.NewSettingsStore(database.DB)
	app := tui.New(tui.Options{
		Provider:  provider,
		Player:    player.NewController(provider, sink, logger, m),
		Config:    cfg,
		History:   history.NewService(database.DB, provider.Name()),
		Settings:  settings,
		Clipboard: clipboard.NewService(cfg.Clipboard.Command, logger),
		Metrics:   m,
		Logger:    logger,
		Start:     tui.StartLocation(settings, start, logger),
	})
	p := tui.NewProgram(app)

	v.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("config file changed", "file", e.Name)
		reloaded := &config.Config{}
		if err := v.Unmarshal(reloaded); err != nil {
			logger.Error("failed to reload config", "error", err)
			return
		}
		if err := reloaded.Validate(); err != nil {
			logger.Error("ignoring invalid config", "error", err)
			return
		}
		config.SetLogLevel(effectiveLogLevel(reloaded.Logging.Level))
		if hp, ok := provider.(*api.Provider); ok {
			hp.Client().SetRateLimit(reloaded.Provider.RateLimit, reloaded.Provider.Burst)
		}
		p.Send(tui.ConfigReloadedMsg{Config: reloaded})
	})
	v.WatchConfig()

	if cfg.Metrics.Listen != "" {
		stop := serveMetrics(cfg.Metrics.Listen, m)
		defer stop()
	}

	return tui.Run(p)
}

// newSink builds the playback sink named by cfg.Backend
func newSink(cfg *config.PlayerConfig) (player.Sink, error) {
	switch cfg.Backend {
	case "mpv":
		sink, err := mpv.New(mpv.Config{
			Path:           cfg.MPVPath,
			Args:           cfg.Args,
			LoadUserConfig: cfg.LoadUserConfig,
			Debug:          debugMode,
			Logger:         logger.With("component", "mpv"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to set up mpv (use --player browser to open streams in a browser): %w", err)
		}
		return sink, nil
	case "browser":
		return player.NewBrowserSink(logger), nil
	default:
		return player.NopSink{}, nil
	}
}

// explicitLocation reads --url, or --view and --search. It returns nil when
// none were given so the saved location can be restored.
func explicitLocation(cmd *cobra.Command) (*nav.Location, error) {
	if locationFlag != "" {
		loc, err := nav.ParseLocation(locationFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --url: %w", err)
		}
		return &loc, nil
	}
	if !cmd.Flags().Changed("view") && !cmd.Flags().Changed("search") {
		return nil, nil
	}
	return &nav.Location{View: nav.ParseView(viewFlag), Search: searchFlag}, nil
}

// serveMetrics exposes m on addr until the returned func is called
func serveMetrics(addr string, m *metrics.Metrics) func() {
	r := chi.NewRouter()
	r.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func defaultConfigPath() string {
	return filepath.Join(config.GetConfigDir(), "config.yaml")
}

func yamlConfig(c *config.Config) (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(data), nil
}

func init() {
	rootCmd.Flags().StringVar(&viewFlag, "view", "movies", "catalog to open (movies or series)")
	rootCmd.Flags().StringVarP(&searchFlag, "search", "s", "", "initial search query")
	rootCmd.Flags().StringVar(&locationFlag, "url", "", `location to open, e.g. "?view=series&search=dark"`)
	rootCmd.Flags().StringVarP(&providerFlag, "provider", "p", "", "catalog backend (http, mock or library)")
	rootCmd.Flags().StringVar(&playerFlag, "player", "", "playback backend (mpv, browser or none)")
}
