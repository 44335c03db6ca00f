// Package library builds a catalog by scanning local movie and series folders.
package library

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/justchokingaround/reel/internal/catalog"
)

// scanWorkers bounds concurrent series folder scans
const scanWorkers = 4

// Provider scans the filesystem on every call
type Provider struct {
	moviesPath string
	seriesPath string
	logger     *slog.Logger
}

// New returns a provider over the two root folders. Either may be missing.
func New(moviesPath, seriesPath string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{moviesPath: moviesPath, seriesPath: seriesPath, logger: logger}
}

func (p *Provider) Name() string { return "library" }

type movieFile struct {
	movie *catalog.Standalone
	path  string
	subs  map[string]string
}

type episodeFile struct {
	path string
	subs map[string]string
}

type seriesFolder struct {
	collection *catalog.Collection
	episodes   map[string]episodeFile
}

func (p *Provider) ListStandalone(ctx context.Context) (catalog.Page, error) {
	return p.SearchStandalone(ctx, "")
}

func (p *Provider) SearchStandalone(ctx context.Context, query string) (catalog.Page, error) {
	movies, err := p.scanMovies(ctx)
	if err != nil {
		return catalog.Page{}, err
	}
	items := make([]catalog.Item, 0, len(movies))
	for _, m := range movies {
		if query == "" || catalog.MatchTitle(m.movie.Title, query) {
			items = append(items, catalog.FromStandalone(m.movie))
		}
	}
	return catalog.Page{Items: items, Total: len(items)}, nil
}

func (p *Provider) ListCollections(ctx context.Context) (catalog.Page, error) {
	return p.SearchCollections(ctx, "")
}

func (p *Provider) SearchCollections(ctx context.Context, query string) (catalog.Page, error) {
	series, err := p.scanSeries(ctx)
	if err != nil {
		return catalog.Page{}, err
	}
	items := make([]catalog.Item, 0, len(series))
	for _, s := range series {
		if query == "" || catalog.MatchTitle(s.collection.Title, query) {
			items = append(items, catalog.FromCollection(s.collection))
		}
	}
	return catalog.Page{Items: items, Total: len(items)}, nil
}

func (p *Provider) CollectionDetail(ctx context.Context, id string) (*catalog.Collection, error) {
	series, err := p.scanSeries(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range series {
		if s.collection.ID == id {
			return s.collection, nil
		}
	}
	return nil, fmt.Errorf("series %s: %w", id, catalog.ErrNotFound)
}

func (p *Provider) StandaloneStreamURL(ctx context.Context, id string) (string, error) {
	path, err := p.MoviePath(ctx, id)
	if err != nil {
		return "", err
	}
	return fileURL(path), nil
}

func (p *Provider) SubItemStreamURL(ctx context.Context, id string) (string, error) {
	path, err := p.EpisodePath(ctx, id)
	if err != nil {
		return "", err
	}
	return fileURL(path), nil
}

func (p *Provider) SubtitleURL(ctx context.Context, kind catalog.Kind, itemID, filename string) (string, error) {
	path, err := p.SubtitlePath(ctx, kind, itemID, filename)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return fileURL(path), nil
}

// MoviePath returns the video file of a movie
func (p *Provider) MoviePath(ctx context.Context, id string) (string, error) {
	movies, err := p.scanMovies(ctx)
	if err != nil {
		return "", err
	}
	for _, m := range movies {
		if m.movie.ID == id {
			return m.path, nil
		}
	}
	return "", fmt.Errorf("movie %s: %w", id, catalog.ErrNotFound)
}

// EpisodePath returns the video file of an episode
func (p *Provider) EpisodePath(ctx context.Context, id string) (string, error) {
	ep, err := p.findEpisode(ctx, id)
	if err != nil {
		return "", err
	}
	return ep.path, nil
}

// SubtitlePath returns the subtitle file named filename attached to an item
func (p *Provider) SubtitlePath(ctx context.Context, kind catalog.Kind, itemID, filename string) (string, error) {
	var subs map[string]string
	switch kind {
	case catalog.KindStandalone:
		movies, err := p.scanMovies(ctx)
		if err != nil {
			return "", err
		}
		for _, m := range movies {
			if m.movie.ID == itemID {
				subs = m.subs
			}
		}
	case catalog.KindSubItem:
		ep, err := p.findEpisode(ctx, itemID)
		if err != nil {
			return "", err
		}
		subs = ep.subs
	}
	if path, ok := subs[filename]; ok {
		return path, nil
	}
	return "", fmt.Errorf("subtitle %s for %s: %w", filename, itemID, catalog.ErrNotFound)
}

func (p *Provider) findEpisode(ctx context.Context, id string) (episodeFile, error) {
	series, err := p.scanSeries(ctx)
	if err != nil {
		return episodeFile{}, err
	}
	for _, s := range series {
		if ep, ok := s.episodes[id]; ok {
			return ep, nil
		}
	}
	return episodeFile{}, fmt.Errorf("episode %s: %w", id, catalog.ErrNotFound)
}

func (p *Provider) scanMovies(ctx context.Context) ([]movieFile, error) {
	entries, err := readDir(p.moviesPath)
	if err != nil {
		return nil, err
	}

	var movies []movieFile
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !isVideo(e.Name()) {
			continue
		}
		path := filepath.Join(p.moviesPath, e.Name())
		title, year := parseName(stem(e.Name()))
		subs, files := findSubtitles(entries, p.moviesPath, e.Name())
		movies = append(movies, movieFile{
			movie: &catalog.Standalone{
				ID:        makeID(stem(e.Name())),
				Title:     title,
				Year:      year,
				Subtitles: subs,
			},
			path: path,
			subs: files,
		})
	}
	slices.SortFunc(movies, func(a, b movieFile) int {
		return cmp.Compare(strings.ToLower(a.movie.Title), strings.ToLower(b.movie.Title))
	})
	return movies, nil
}

func (p *Provider) scanSeries(ctx context.Context) ([]seriesFolder, error) {
	entries, err := readDir(p.seriesPath)
	if err != nil {
		return nil, err
	}

	var dirs []os.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		}
	}

	results := make([]*seriesFolder, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanWorkers)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := p.scanSeriesFolder(filepath.Join(p.seriesPath, dir.Name()))
			if err != nil {
				p.logger.Warn("skipping series folder", "folder", dir.Name(), "error", err)
				return nil
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series := make([]seriesFolder, 0, len(results))
	for _, s := range results {
		if s != nil {
			series = append(series, *s)
		}
	}
	slices.SortFunc(series, func(a, b seriesFolder) int {
		return cmp.Compare(strings.ToLower(a.collection.Title), strings.ToLower(b.collection.Title))
	})
	return series, nil
}

// scanSeriesFolder returns nil without error when the folder holds no episodes
func (p *Provider) scanSeriesFolder(dir string) (*seriesFolder, error) {
	name := filepath.Base(dir)
	title, year := parseName(name)
	id := makeID(name)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	folder := &seriesFolder{
		collection: &catalog.Collection{ID: id, Title: title, YearRange: year},
		episodes:   make(map[string]episodeFile),
	}

	bySeason := make(map[int][]catalog.SubItem)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		number, ok := seasonNumber(e.Name())
		if !ok {
			continue
		}
		eps, err := scanEpisodes(filepath.Join(dir, e.Name()), number, id, folder.episodes)
		if err != nil {
			return nil, err
		}
		if len(eps) > 0 {
			bySeason[number] = append(bySeason[number], eps...)
		}
	}
	if len(bySeason) == 0 {
		eps, err := scanEpisodes(dir, 1, id, folder.episodes)
		if err != nil {
			return nil, err
		}
		if len(eps) > 0 {
			bySeason[1] = eps
		}
	}
	if len(bySeason) == 0 {
		return nil, nil
	}

	numbers := make([]int, 0, len(bySeason))
	for n := range bySeason {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)
	for _, n := range numbers {
		folder.collection.Seasons = append(folder.collection.Seasons, catalog.Season{Number: n, Episodes: bySeason[n]})
	}
	folder.collection.TotalEpisodes = folder.collection.EpisodeCount()
	return folder, nil
}

func scanEpisodes(dir string, season int, seriesID string, index map[string]episodeFile) ([]catalog.SubItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var eps []catalog.SubItem
	for _, e := range entries {
		if e.IsDir() || !isVideo(e.Name()) {
			continue
		}
		base := stem(e.Name())
		number, ok := episodeNumber(base)
		if !ok {
			continue
		}
		subs, files := findSubtitles(entries, dir, e.Name())
		ep := catalog.SubItem{
			ID:        fmt.Sprintf("s%02de%02d_%s", season, number, seriesID),
			Season:    season,
			Episode:   number,
			Title:     episodeTitle(base, season, number),
			Subtitles: subs,
		}
		index[ep.ID] = episodeFile{path: filepath.Join(dir, e.Name()), subs: files}
		eps = append(eps, ep)
	}
	slices.SortStableFunc(eps, func(a, b catalog.SubItem) int { return cmp.Compare(a.Episode, b.Episode) })
	return eps, nil
}

// findSubtitles returns the subtitle files in entries whose stem starts with
// or contains the stem of video
func findSubtitles(entries []os.DirEntry, dir, video string) ([]catalog.Subtitle, map[string]string) {
	videoStem := stem(video)
	var subs []catalog.Subtitle
	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !isSubtitle(e.Name()) {
			continue
		}
		s := stem(e.Name())
		if !strings.HasPrefix(s, videoStem) && !strings.Contains(s, videoStem) {
			continue
		}
		code := subtitleLanguage(s)
		subs = append(subs, catalog.Subtitle{Language: languageLabel(code), LanguageCode: code, Filename: e.Name()})
		files[e.Name()] = filepath.Join(dir, e.Name())
	}
	return subs, files
}

// readDir treats a missing root as an empty library
func readDir(dir string) ([]os.DirEntry, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	return entries, nil
}

func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}
