package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/metrics"
	"github.com/justchokingaround/reel/internal/providers/api"
	providerhttp "github.com/justchokingaround/reel/internal/providers/http"
	"github.com/justchokingaround/reel/internal/providers/library"
	"github.com/justchokingaround/reel/internal/providers/mock"
)

const movieBytes = "0123456789abcdefghij"

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newLibraryServer(t *testing.T) (*httptest.Server, *metrics.Metrics) {
	t.Helper()
	root := t.TempDir()
	movies := filepath.Join(root, "movies")
	series := filepath.Join(root, "series")

	write(t, filepath.Join(movies, "Inception (2010).mp4"), movieBytes)
	write(t, filepath.Join(movies, "Inception (2010).en.srt"), "1\n00:00:01,000 --> 00:00:02,000\nhi\n")
	write(t, filepath.Join(series, "Dark", "Season 1", "S01E01.Secrets.mkv"), "episode")
	write(t, filepath.Join(series, "Dark", "Season 1", "S01E02.Lies.mkv"), "episode")

	m := metrics.New()
	s := New(Options{Provider: library.New(movies, series, nil), Metrics: m})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, m
}

func get(t *testing.T, url string, header ...string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestCatalogRoutes(t *testing.T) {
	ts, _ := newLibraryServer(t)

	t.Run("movies", func(t *testing.T) {
		resp := get(t, ts.URL+"/api/movies/")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var body api.MovieList
		decode(t, resp, &body)
		require.Len(t, body.Movies, 1)
		assert.Equal(t, 1, body.Total)
		assert.Equal(t, "Inception", body.Movies[0].Title)
		assert.Equal(t, "2010", body.Movies[0].Year)
		require.Len(t, body.Movies[0].Subtitles, 1)
		assert.Equal(t, "en", body.Movies[0].Subtitles[0].LanguageCode)
	})

	t.Run("search", func(t *testing.T) {
		var body api.MovieList
		decode(t, get(t, ts.URL+"/api/movies/search?q=INCEP"), &body)
		assert.Len(t, body.Movies, 1)

		decode(t, get(t, ts.URL+"/api/movies/search?q=zzz"), &body)
		assert.Empty(t, body.Movies)
		assert.Equal(t, 0, body.Total)
	})

	t.Run("search requires q", func(t *testing.T) {
		for _, path := range []string{"/api/movies/search", "/api/series/search?q="} {
			resp := get(t, ts.URL+path)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, path)
		}
	})

	t.Run("series and detail", func(t *testing.T) {
		var list api.SeriesList
		decode(t, get(t, ts.URL+"/api/series/"), &list)
		require.Len(t, list.Series, 1)
		assert.Equal(t, "Dark", list.Series[0].Title)
		assert.Equal(t, 2, list.Series[0].TotalEpisodes)

		var detail api.SeriesDTO
		decode(t, get(t, ts.URL+"/api/series/"+string(list.Series[0].ID)), &detail)
		require.Len(t, detail.Seasons, 1)
		assert.Len(t, detail.Seasons[0].Episodes, 2)
	})

	t.Run("missing series is 404", func(t *testing.T) {
		resp := get(t, ts.URL+"/api/series/nope")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorBody
		decode(t, resp, &body)
		assert.NotEmpty(t, body.Detail)
	})

	t.Run("health", func(t *testing.T) {
		var body map[string]string
		decode(t, get(t, ts.URL+"/healthz"), &body)
		assert.Equal(t, "healthy", body["status"])
	})
}

func TestStreamRange(t *testing.T) {
	ts, _ := newLibraryServer(t)
	base := ts.URL + "/api/stream/movie/inception__2010_"

	resp := get(t, base)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, movieBytes, string(data))

	resp = get(t, base, "Range", "bytes=5-9")
	require.Equal(t, http.StatusPartialContent, resp.StatusCode)
	assert.Equal(t, "bytes 5-9/20", resp.Header.Get("Content-Range"))
	data, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "56789", string(data))

	assert.Equal(t, http.StatusNotFound, get(t, ts.URL+"/api/stream/movie/missing").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/api/stream/episode/s01e02_dark").StatusCode)
}

func TestSubtitleRoute(t *testing.T) {
	ts, _ := newLibraryServer(t)

	resp := get(t, ts.URL+"/api/stream/subtitle/movie/inception__2010_/Inception%20%282010%29.en.srt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/x-subrip"))

	assert.Equal(t, http.StatusNotFound,
		get(t, ts.URL+"/api/stream/subtitle/movie/inception__2010_/other.srt").StatusCode)
	assert.Equal(t, http.StatusNotFound,
		get(t, ts.URL+"/api/stream/subtitle/show/inception__2010_/x.srt").StatusCode)
}

func TestRedirectsForRemoteProviders(t *testing.T) {
	s := New(Options{Provider: mock.New(mock.Options{})})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	resp := get(t, ts.URL+"/api/stream/movie/1")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, mock.MovieStreamURL, resp.Header.Get("Location"))

	resp = get(t, ts.URL+"/api/stream/episode/101")
	assert.Equal(t, mock.EpisodeStreamURL, resp.Header.Get("Location"))

	// the demo catalog has no subtitle files
	resp = get(t, ts.URL+"/api/stream/subtitle/movie/1/matrix_en.srt")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHTTPProviderAgainstServer(t *testing.T) {
	ts, _ := newLibraryServer(t)

	cfg := providerhttp.DefaultClientConfig()
	cfg.BaseURL = ts.URL
	cfg.RetryWait = time.Millisecond
	p := api.New(cfg)
	ctx := context.Background()

	page, err := p.ListStandalone(ctx)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "inception__2010_", page.Items[0].ID())

	series, err := p.SearchCollections(ctx, "dark")
	require.NoError(t, err)
	require.Len(t, series.Items, 1)

	detail, err := p.CollectionDetail(ctx, series.Items[0].ID())
	require.NoError(t, err)
	assert.Equal(t, 2, detail.EpisodeCount())

	_, err = p.CollectionDetail(ctx, "nope")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestMetricsEndpoint(t *testing.T) {
	ts, m := newLibraryServer(t)

	get(t, ts.URL+"/api/movies/")
	get(t, ts.URL+"/api/series/nope")

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, f := range families {
		if f.GetName() != "reel_http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			var route, status string
			for _, l := range metric.GetLabel() {
				switch l.GetName() {
				case "route":
					route = l.GetValue()
				case "status":
					status = l.GetValue()
				}
			}
			seen[route+" "+status] = true
		}
	}
	assert.True(t, seen["/api/movies 200"], "%v", seen)
	assert.True(t, seen["/api/series/{id} 404"], "%v", seen)

	resp := get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "reel_http_requests_total")
}
