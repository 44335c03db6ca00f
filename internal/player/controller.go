package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/metrics"
)

const (
	resolveTimeout = 30 * time.Second
	clearTimeout   = 5 * time.Second
	trackWorkers   = 4
)

// ErrNotPlayable is returned for collections and empty items
var ErrNotPlayable = errors.New("item is not playable")

// Resolver is the part of a catalog provider the player needs
type Resolver interface {
	StandaloneStreamURL(ctx context.Context, id string) (string, error)
	SubItemStreamURL(ctx context.Context, id string) (string, error)
	SubtitleURL(ctx context.Context, kind catalog.Kind, itemID, filename string) (string, error)
}

// Controller is the only writer to its Sink. Every Play bumps a generation;
// a play whose resolution or load finishes after a newer Play or a Stop is
// dropped. mu guards the playback state and is never held across sink calls,
// which may block for seconds; sinkMu serializes the sink itself.
type Controller struct {
	resolver Resolver
	sink     Sink
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu         sync.Mutex
	generation uint64
	now        *NowPlaying

	sinkMu sync.Mutex
}

func NewController(resolver Resolver, sink Sink, logger *slog.Logger, m *metrics.Metrics) *Controller {
	if sink == nil {
		sink = NopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		resolver: resolver,
		sink:     sink,
		logger:   logger,
		metrics:  m,
	}
}

// Play returns the command that resolves req and loads it into the sink. The
// previous source and tracks are cleared before the new ones are attached.
func (c *Controller) Play(req Request) tea.Cmd {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		media, err := c.resolve(ctx, req)
		if err != nil {
			return c.fail(gen, req, err)
		}

		c.sinkMu.Lock()
		defer c.sinkMu.Unlock()

		if !c.current(gen) {
			c.logger.Debug("dropping superseded play", "title", media.Title)
			return nil
		}
		c.clearSink(ctx)
		c.mu.Lock()
		if gen == c.generation {
			c.now = nil
		}
		c.mu.Unlock()

		if err := c.sink.Load(ctx, media); err != nil {
			if !c.current(gen) {
				return nil
			}
			c.logger.Error("sink rejected source", "title", media.Title, "error", err)
			c.metrics.Playback(err)
			return PlaybackFailedMsg{Err: &PlaybackError{Title: req.Title(), Err: err}}
		}

		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			c.logger.Debug("play superseded while loading", "title", media.Title)
			c.clearSink(ctx)
			return nil
		}
		c.now = &NowPlaying{
			Kind:       req.Item.Kind,
			Item:       req.Item,
			Collection: req.Collection,
			Source:     media.URL,
			Tracks:     media.Tracks,
		}
		np := *c.now
		c.mu.Unlock()

		c.metrics.Playback(nil)
		c.logger.Info("playback started", "title", media.Title, "tracks", len(media.Tracks))
		return PlaybackStartedMsg{NowPlaying: np}
	}
}

func (c *Controller) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.generation
}

func (c *Controller) fail(gen uint64, req Request, err error) tea.Msg {
	if !c.current(gen) {
		return nil
	}
	c.logger.Error("failed to resolve playback", "title", req.Title(), "error", err)
	c.metrics.Playback(err)
	return PlaybackFailedMsg{Err: &PlaybackError{Title: req.Title(), Err: err}}
}

// Stop invalidates plays still resolving or loading and clears the sink. It
// never waits on a sink that is busy loading: the superseded play clears the
// sink itself once its load returns. Safe to call when nothing is playing.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.generation++
	c.now = nil
	c.mu.Unlock()

	if !c.sinkMu.TryLock() {
		return
	}
	defer c.sinkMu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), clearTimeout)
	defer cancel()
	c.clearSink(ctx)
}

// clearSink must be called with sinkMu held
func (c *Controller) clearSink(ctx context.Context) {
	if err := c.sink.Clear(ctx); err != nil {
		c.logger.Warn("failed to clear player", "error", err)
	}
}

// NowPlaying returns a copy of the current playback, nil when idle
func (c *Controller) NowPlaying() *NowPlaying {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now == nil {
		return nil
	}
	np := *c.now
	return &np
}

// resolve fetches the stream URL and every subtitle URL concurrently.
// Subtitles keep the item's order; unavailable ones are skipped and the first
// attached track is the default.
func (c *Controller) resolve(ctx context.Context, req Request) (Media, error) {
	item := req.Item
	if !item.Playable() || item.ID() == "" {
		return Media{}, ErrNotPlayable
	}

	subs := item.Subtitles()
	urls := make([]string, len(subs))
	var source string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(trackWorkers + 1)
	g.Go(func() error {
		var err error
		if item.Kind == catalog.KindStandalone {
			source, err = c.resolver.StandaloneStreamURL(gctx, item.ID())
		} else {
			source, err = c.resolver.SubItemStreamURL(gctx, item.ID())
		}
		if err != nil {
			return fmt.Errorf("stream url: %w", err)
		}
		if source == "" {
			return errors.New("stream url: empty")
		}
		return nil
	})
	for i, sub := range subs {
		g.Go(func() error {
			u, err := c.resolver.SubtitleURL(gctx, item.Kind, item.ID(), sub.Filename)
			if err != nil {
				c.logger.Warn("skipping subtitle", "file", sub.Filename, "error", err)
				return nil
			}
			urls[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Media{}, err
	}

	media := Media{URL: source, Title: req.Title()}
	for i, sub := range subs {
		if urls[i] == "" {
			continue
		}
		media.Tracks = append(media.Tracks, Track{
			URL:          urls[i],
			Language:     sub.Language,
			LanguageCode: sub.LanguageCode,
			Default:      len(media.Tracks) == 0,
		})
	}
	return media, nil
}
