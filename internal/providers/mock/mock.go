// Package mock serves a fixed demo catalog from memory.
package mock

import (
	"context"
	"time"

	"github.com/justchokingaround/reel/internal/catalog"
)

// Sample streams used for every title
const (
	MovieStreamURL   = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"
	EpisodeStreamURL = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4"
)

// Options tunes simulated latency. Zero values answer immediately.
type Options struct {
	ListLatency   time.Duration
	SearchLatency time.Duration
}

// Provider is an in-memory catalog
type Provider struct {
	opts   Options
	movies []*catalog.Standalone
	series []*catalog.Collection
}

// New returns a provider over the built-in demo catalog
func New(opts Options) *Provider {
	return NewWithCatalog(opts, demoMovies(), demoSeries())
}

// NewWithCatalog returns a provider over the given titles
func NewWithCatalog(opts Options, movies []*catalog.Standalone, series []*catalog.Collection) *Provider {
	return &Provider{opts: opts, movies: movies, series: series}
}

func (p *Provider) Name() string { return "mock" }

func (p *Provider) ListStandalone(ctx context.Context) (catalog.Page, error) {
	if err := sleep(ctx, p.opts.ListLatency); err != nil {
		return catalog.Page{}, err
	}
	return p.standalonePage(""), nil
}

func (p *Provider) SearchStandalone(ctx context.Context, query string) (catalog.Page, error) {
	if err := sleep(ctx, p.opts.SearchLatency); err != nil {
		return catalog.Page{}, err
	}
	return p.standalonePage(query), nil
}

func (p *Provider) ListCollections(ctx context.Context) (catalog.Page, error) {
	if err := sleep(ctx, p.opts.ListLatency); err != nil {
		return catalog.Page{}, err
	}
	return p.collectionPage(""), nil
}

func (p *Provider) SearchCollections(ctx context.Context, query string) (catalog.Page, error) {
	if err := sleep(ctx, p.opts.SearchLatency); err != nil {
		return catalog.Page{}, err
	}
	return p.collectionPage(query), nil
}

func (p *Provider) CollectionDetail(ctx context.Context, id string) (*catalog.Collection, error) {
	if err := sleep(ctx, p.opts.SearchLatency); err != nil {
		return nil, err
	}
	for _, c := range p.series {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (p *Provider) StandaloneStreamURL(ctx context.Context, id string) (string, error) {
	return MovieStreamURL, nil
}

func (p *Provider) SubItemStreamURL(ctx context.Context, id string) (string, error) {
	return EpisodeStreamURL, nil
}

// SubtitleURL always reports the subtitle as unavailable
func (p *Provider) SubtitleURL(ctx context.Context, kind catalog.Kind, itemID, filename string) (string, error) {
	return "", nil
}

func (p *Provider) standalonePage(query string) catalog.Page {
	items := make([]catalog.Item, 0, len(p.movies))
	for _, m := range p.movies {
		if query == "" || catalog.MatchTitle(m.Title, query) {
			items = append(items, catalog.FromStandalone(m))
		}
	}
	return catalog.Page{Items: items, Total: len(items)}
}

func (p *Provider) collectionPage(query string) catalog.Page {
	items := make([]catalog.Item, 0, len(p.series))
	for _, c := range p.series {
		if query == "" || catalog.MatchTitle(c.Title, query) {
			items = append(items, catalog.FromCollection(c))
		}
	}
	return catalog.Page{Items: items, Total: len(items)}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
