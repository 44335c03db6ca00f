package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/providers/api"
)

var subtitleTypes = map[string]string{
	".srt": "application/x-subrip; charset=utf-8",
	".vtt": "text/vtt; charset=utf-8",
	".ass": "text/x-ssa; charset=utf-8",
	".sub": "text/plain; charset=utf-8",
}

type errorBody struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "reel catalog API",
		"provider": s.provider.Name(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	page, err := s.provider.ListStandalone(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MovieListFrom(page))
}

func (s *Server) handleSearchMovies(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}
	page, err := s.provider.SearchStandalone(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MovieListFrom(page))
}

func (s *Server) handleListSeries(w http.ResponseWriter, r *http.Request) {
	page, err := s.provider.ListCollections(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.SeriesListFrom(page))
}

func (s *Server) handleSearchSeries(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}
	page, err := s.provider.SearchCollections(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.SeriesListFrom(page))
}

func (s *Server) handleSeriesDetail(w http.ResponseWriter, r *http.Request) {
	c, err := s.provider.CollectionDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.SeriesFrom(c))
}

func (s *Server) handleStreamMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.files != nil {
		s.serveFile(w, r, func(ctx context.Context) (string, error) { return s.files.MoviePath(ctx, id) }, "")
		return
	}
	s.redirect(w, r, func(ctx context.Context) (string, error) { return s.provider.StandaloneStreamURL(ctx, id) })
}

func (s *Server) handleStreamEpisode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.files != nil {
		s.serveFile(w, r, func(ctx context.Context) (string, error) { return s.files.EpisodePath(ctx, id) }, "")
		return
	}
	s.redirect(w, r, func(ctx context.Context) (string, error) { return s.provider.SubItemStreamURL(ctx, id) })
}

func (s *Server) handleSubtitle(w http.ResponseWriter, r *http.Request) {
	var kind catalog.Kind
	switch chi.URLParam(r, "type") {
	case "movie":
		kind = catalog.KindStandalone
	case "episode":
		kind = catalog.KindSubItem
	default:
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "Unknown item type"})
		return
	}
	id := chi.URLParam(r, "id")
	filename := chi.URLParam(r, "filename")

	if s.files != nil {
		contentType := subtitleTypes[strings.ToLower(filepath.Ext(filename))]
		s.serveFile(w, r, func(ctx context.Context) (string, error) {
			return s.files.SubtitlePath(ctx, kind, id, filename)
		}, contentType)
		return
	}
	s.redirect(w, r, func(ctx context.Context) (string, error) {
		u, err := s.provider.SubtitleURL(ctx, kind, id, filename)
		if err == nil && u == "" {
			err = catalog.ErrNotFound
		}
		return u, err
	})
}

// serveFile streams the resolved file with Range and conditional request
// support
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, resolve func(context.Context) (string, error), contentType string) {
	path, err := resolve(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = catalog.ErrNotFound
		}
		s.fail(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, resolve func(context.Context) (string, error)) {
	target, err := resolve(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// fail maps provider errors onto status codes
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "Not found"})
	case errors.Is(err, context.Canceled):
		// client went away, nothing to write
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "Internal server error"})
	}
}

// queryParam returns the q parameter, answering 422 itself when it is missing
func queryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query().Get("q")
	if len(q) < 1 {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "query parameter q must be at least 1 character"})
		return "", false
	}
	return q, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
