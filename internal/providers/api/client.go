// Package api talks to a catalog server exposing the /api movies, series and
// stream endpoints.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/justchokingaround/reel/internal/catalog"
	providerhttp "github.com/justchokingaround/reel/internal/providers/http"
)

// Provider implements the catalog contract over HTTP
type Provider struct {
	baseURL string
	client  *providerhttp.Client
	logger  *slog.Logger
}

// New creates a provider for the server at cfg.BaseURL
func New(cfg providerhttp.ClientConfig) *Provider {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Provider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  providerhttp.NewClient(cfg),
		logger:  cfg.Logger,
	}
}

func (p *Provider) Name() string { return "http" }

// Client exposes the underlying HTTP client, e.g. to retune its rate limit
func (p *Provider) Client() *providerhttp.Client { return p.client }

func (p *Provider) ListStandalone(ctx context.Context) (catalog.Page, error) {
	var body MovieList
	if _, err := p.client.Get(ctx, "/api/movies/", nil, &body); err != nil {
		return catalog.Page{}, fmt.Errorf("failed to fetch movies: %w", err)
	}
	return body.Page(), nil
}

func (p *Provider) SearchStandalone(ctx context.Context, query string) (catalog.Page, error) {
	if strings.TrimSpace(query) == "" {
		return p.ListStandalone(ctx)
	}
	var body MovieList
	if _, err := p.client.Get(ctx, "/api/movies/search", map[string]string{"q": query}, &body); err != nil {
		return catalog.Page{}, fmt.Errorf("failed to search movies: %w", err)
	}
	return body.Page(), nil
}

func (p *Provider) ListCollections(ctx context.Context) (catalog.Page, error) {
	var body SeriesList
	if _, err := p.client.Get(ctx, "/api/series/", nil, &body); err != nil {
		return catalog.Page{}, fmt.Errorf("failed to fetch series: %w", err)
	}
	return body.Page(), nil
}

func (p *Provider) SearchCollections(ctx context.Context, query string) (catalog.Page, error) {
	if strings.TrimSpace(query) == "" {
		return p.ListCollections(ctx)
	}
	var body SeriesList
	if _, err := p.client.Get(ctx, "/api/series/search", map[string]string{"q": query}, &body); err != nil {
		return catalog.Page{}, fmt.Errorf("failed to search series: %w", err)
	}
	return body.Page(), nil
}

func (p *Provider) CollectionDetail(ctx context.Context, id string) (*catalog.Collection, error) {
	var body SeriesDTO
	_, err := p.client.Get(ctx, "/api/series/"+url.PathEscape(id), nil, &body)
	if err != nil {
		var statusErr *providerhttp.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("series %s: %w", id, catalog.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch series detail: %w", err)
	}
	if body.ID == "" {
		return nil, fmt.Errorf("series %s: %w", id, catalog.ErrNotFound)
	}
	return body.Collection(), nil
}

func (p *Provider) StandaloneStreamURL(ctx context.Context, id string) (string, error) {
	return p.baseURL + "/api/stream/movie/" + url.PathEscape(id), nil
}

func (p *Provider) SubItemStreamURL(ctx context.Context, id string) (string, error) {
	return p.baseURL + "/api/stream/episode/" + url.PathEscape(id), nil
}

func (p *Provider) SubtitleURL(ctx context.Context, kind catalog.Kind, itemID, filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	return fmt.Sprintf("%s/api/stream/subtitle/%s/%s/%s",
		p.baseURL, KindSegment(kind), url.PathEscape(itemID), url.PathEscape(filename)), nil
}
