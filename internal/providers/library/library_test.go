package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/reel/internal/catalog"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func newFixture(t *testing.T) *Provider {
	t.Helper()
	root := t.TempDir()
	movies := filepath.Join(root, "movies")
	series := filepath.Join(root, "series")

	touch(t, filepath.Join(movies, "The.Matrix (1999).mkv"))
	touch(t, filepath.Join(movies, "The.Matrix (1999).en.srt"))
	touch(t, filepath.Join(movies, "Inception.mp4"))
	touch(t, filepath.Join(movies, "notes.txt"))

	touch(t, filepath.Join(series, "Breaking Bad (2008)", "Season 1", "S01E02.Cats in the Bag.mkv"))
	touch(t, filepath.Join(series, "Breaking Bad (2008)", "Season 1", "S01E01.Pilot.mkv"))
	touch(t, filepath.Join(series, "Breaking Bad (2008)", "Season 1", "S01E01.Pilot.en.srt"))
	touch(t, filepath.Join(series, "Breaking Bad (2008)", "Season 2", "S02E01.Seven Thirty-Seven.mkv"))
	touch(t, filepath.Join(series, "Flat Show", "Episode 3.mp4"))
	touch(t, filepath.Join(series, "Empty", "readme.txt"))

	return New(movies, series, nil)
}

func TestListStandalone(t *testing.T) {
	p := newFixture(t)

	page, err := p.ListStandalone(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)

	assert.Equal(t, "Inception", page.Items[0].Title())
	matrix := page.Items[1].Standalone
	require.NotNil(t, matrix)
	assert.Equal(t, "The Matrix", matrix.Title)
	assert.Equal(t, "1999", matrix.Year)
	require.Len(t, matrix.Subtitles, 1)
	assert.Equal(t, "en", matrix.Subtitles[0].LanguageCode)
	assert.Equal(t, "English", matrix.Subtitles[0].Language)
}

func TestSearchStandalone(t *testing.T) {
	p := newFixture(t)

	page, err := p.SearchStandalone(context.Background(), "matrix")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "The Matrix", page.Items[0].Title())

	page, err = p.SearchStandalone(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListCollections(t *testing.T) {
	p := newFixture(t)

	page, err := p.ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	bb := page.Items[0].Collection
	require.NotNil(t, bb)
	assert.Equal(t, "Breaking Bad", bb.Title)
	assert.Equal(t, "2008", bb.YearRange)
	assert.Equal(t, 3, bb.TotalEpisodes)
	require.Len(t, bb.Seasons, 2)
	assert.Equal(t, 1, bb.Seasons[0].Number)
	require.Len(t, bb.Seasons[0].Episodes, 2)
	assert.Equal(t, "Pilot", bb.Seasons[0].Episodes[0].Title)
	assert.Equal(t, "s01e01_breaking_bad__2008_", bb.Seasons[0].Episodes[0].ID)
	assert.Len(t, bb.Seasons[0].Episodes[0].Subtitles, 1)

	flat := page.Items[1].Collection
	require.NotNil(t, flat)
	require.Len(t, flat.Seasons, 1)
	assert.Equal(t, 1, flat.Seasons[0].Number)
	assert.Equal(t, 3, flat.Seasons[0].Episodes[0].Episode)
}

func TestCollectionDetail(t *testing.T) {
	p := newFixture(t)

	c, err := p.CollectionDetail(context.Background(), "flat_show")
	require.NoError(t, err)
	assert.Equal(t, "Flat Show", c.Title)

	_, err = p.CollectionDetail(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestStreamURLs(t *testing.T) {
	p := newFixture(t)
	ctx := context.Background()

	u, err := p.StandaloneStreamURL(ctx, "inception")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "file://"))
	assert.True(t, strings.HasSuffix(u, "Inception.mp4"))

	_, err = p.StandaloneStreamURL(ctx, "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	path, err := p.EpisodePath(ctx, "s01e02_breaking_bad__2008_")
	require.NoError(t, err)
	assert.Equal(t, "S01E02.Cats in the Bag.mkv", filepath.Base(path))
}

func TestSubtitleURL(t *testing.T) {
	p := newFixture(t)
	ctx := context.Background()

	u, err := p.SubtitleURL(ctx, catalog.KindSubItem, "s01e01_breaking_bad__2008_", "S01E01.Pilot.en.srt")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u, "S01E01.Pilot.en.srt"))

	u, err = p.SubtitleURL(ctx, catalog.KindStandalone, "inception", "nope.srt")
	require.NoError(t, err)
	assert.Empty(t, u)
}

func TestMissingRoots(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "nope"), "", nil)

	page, err := p.ListStandalone(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = p.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}
