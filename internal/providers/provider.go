package providers

import (
	"context"

	"github.com/justchokingaround/reel/internal/catalog"
)

// Provider supplies the movie and series catalogs, search, collection detail
// and stream/subtitle URLs. Every call may block on I/O and may fail.
type Provider interface {
	Name() string

	ListStandalone(ctx context.Context) (catalog.Page, error)
	SearchStandalone(ctx context.Context, query string) (catalog.Page, error)
	ListCollections(ctx context.Context) (catalog.Page, error)
	SearchCollections(ctx context.Context, query string) (catalog.Page, error)

	// CollectionDetail returns catalog.ErrNotFound when no collection has id
	CollectionDetail(ctx context.Context, id string) (*catalog.Collection, error)

	StandaloneStreamURL(ctx context.Context, id string) (string, error)
	SubItemStreamURL(ctx context.Context, id string) (string, error)

	// SubtitleURL returns "" when the subtitle is unavailable
	SubtitleURL(ctx context.Context, kind catalog.Kind, itemID, filename string) (string, error)
}

// Backend names accepted by the provider.backend setting
const (
	BackendHTTP    = "http"
	BackendMock    = "mock"
	BackendLibrary = "library"
)
