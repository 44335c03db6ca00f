// Package server exposes a catalog provider over HTTP using the same /api
// contract the http provider consumes, so one reel instance can serve its
// local library to another.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/metrics"
	"github.com/justchokingaround/reel/internal/providers"
)

// FileResolver maps catalog ids to files on disk. Providers that implement it
// have their streams served directly with range support, all others are
// redirected to the URL the provider reports.
type FileResolver interface {
	MoviePath(ctx context.Context, id string) (string, error)
	EpisodePath(ctx context.Context, id string) (string, error)
	SubtitlePath(ctx context.Context, kind catalog.Kind, itemID, filename string) (string, error)
}

type Options struct {
	Provider providers.Provider
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	// CORSOrigins allows every origin when empty
	CORSOrigins []string
	// RateLimit is requests per minute per client IP, 0 disables it
	RateLimit int
}

// Server serves one provider
type Server struct {
	provider providers.Provider
	files    FileResolver
	metrics  *metrics.Metrics
	logger   *slog.Logger
	handler  http.Handler
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		provider: opts.Provider,
		metrics:  opts.Metrics,
		logger:   logger.With("component", "server"),
	}
	if files, ok := opts.Provider.(FileResolver); ok {
		s.files = files
	}
	s.handler = s.routes(opts)
	return s
}

func (s *Server) routes(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Range", "Content-Type"},
		ExposedHeaders: []string{"Accept-Ranges", "Content-Range", "Content-Length"},
		MaxAge:         86400,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
		}

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", s.handleListMovies)
			r.Get("/search", s.handleSearchMovies)
		})
		r.Route("/series", func(r chi.Router) {
			r.Get("/", s.handleListSeries)
			r.Get("/search", s.handleSearchSeries)
			r.Get("/{id}", s.handleSeriesDetail)
		})
		r.Route("/stream", func(r chi.Router) {
			r.Get("/movie/{id}", s.handleStreamMovie)
			r.Get("/episode/{id}", s.handleStreamEpisode)
			r.Get("/subtitle/{type}/{id}/{filename}", s.handleSubtitle)
		})
	})

	return r
}

// Handler returns the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("catalog server listening", "addr", addr, "provider", s.provider.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("catalog server stopped")
	return nil
}

// instrument logs every request and counts it by route pattern
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.HTTPRequest(route, status)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}
