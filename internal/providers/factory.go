package providers

import (
	"log/slog"

	"github.com/justchokingaround/reel/internal/config"
	"github.com/justchokingaround/reel/internal/providers/api"
	providerhttp "github.com/justchokingaround/reel/internal/providers/http"
	"github.com/justchokingaround/reel/internal/providers/library"
	"github.com/justchokingaround/reel/internal/providers/mock"
)

var (
	_ Provider = (*api.Provider)(nil)
	_ Provider = (*mock.Provider)(nil)
	_ Provider = (*library.Provider)(nil)
)

// NewRegistryFromConfig registers every backend, each tuned by cfg
func NewRegistryFromConfig(cfg *config.ProviderConfig, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	r := NewRegistry()
	backends := []Provider{
		api.New(HTTPClientConfig(cfg, logger)),
		mock.New(mock.Options{
			ListLatency:   cfg.Mock.ListLatency,
			SearchLatency: cfg.Mock.SearchLatency,
		}),
		library.New(cfg.Library.MoviesPath, cfg.Library.SeriesPath, logger.With("provider", BackendLibrary)),
	}
	for _, p := range backends {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// FromConfig returns the backend named by cfg.Backend
func FromConfig(cfg *config.ProviderConfig, logger *slog.Logger) (Provider, error) {
	r, err := NewRegistryFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	return r.Get(cfg.Backend)
}

// HTTPClientConfig maps the provider section onto the HTTP client settings
func HTTPClientConfig(cfg *config.ProviderConfig, logger *slog.Logger) providerhttp.ClientConfig {
	if logger == nil {
		logger = slog.Default()
	}
	return providerhttp.ClientConfig{
		BaseURL:          cfg.BaseURL,
		Timeout:          cfg.Timeout,
		MaxRetries:       cfg.MaxRetries,
		UserAgent:        cfg.UserAgent,
		RateLimit:        cfg.RateLimit,
		Burst:            cfg.Burst,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		OpenTimeout:      cfg.Breaker.OpenTimeout,
		Logger:           logger.With("provider", BackendHTTP),
	}
}
