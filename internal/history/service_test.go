package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/config"
	"github.com/justchokingaround/reel/internal/database"
	"github.com/justchokingaround/reel/internal/player"
)

func newService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "reel.db")})
	require.NoError(t, err)

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewService(db, "mock")
	s.now = func() time.Time { return clock }
	return s, &clock
}

func moviePlay(id, title string) player.NowPlaying {
	return player.NowPlaying{
		Kind:   catalog.KindStandalone,
		Item:   catalog.FromStandalone(&catalog.Standalone{ID: id, Title: title}),
		Source: "https://cdn/movie/" + id,
	}
}

func TestRecordAndRecent(t *testing.T) {
	s, clock := newService(t)

	require.NoError(t, s.Record(moviePlay("1", "Inception")))
	*clock = clock.Add(time.Minute)

	dark := &catalog.Collection{ID: "dark", Title: "Dark"}
	require.NoError(t, s.Record(player.NowPlaying{
		Kind:       catalog.KindSubItem,
		Item:       catalog.FromSubItem(&catalog.SubItem{ID: "s01e02", Season: 1, Episode: 2, Title: "Lies"}),
		Collection: dark,
	}))

	rows, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Lies", rows[0].Title)
	assert.Equal(t, "subitem", rows[0].Kind)
	assert.Equal(t, "dark", rows[0].CollectionID)
	assert.Equal(t, "Dark", rows[0].CollectionTitle)
	assert.Equal(t, 1, rows[0].Season)
	assert.Equal(t, 2, rows[0].Episode)
	assert.Equal(t, "mock", rows[0].Provider)

	assert.Equal(t, "Inception", rows[1].Title)
	assert.Equal(t, "standalone", rows[1].Kind)

	last, err := s.Last()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "s01e02", last.ItemID)
}

func TestList(t *testing.T) {
	s, clock := newService(t)
	for _, title := range []string{"Inception", "Interstellar", "The Dark Knight"} {
		require.NoError(t, s.Record(moviePlay(title, title)))
		*clock = clock.Add(time.Hour)
	}

	t.Run("search", func(t *testing.T) {
		rows, err := s.List(FilterOptions{SearchQuery: "inter"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Interstellar", rows[0].Title)
	})

	t.Run("oldest first with limit", func(t *testing.T) {
		rows, err := s.List(FilterOptions{SortBy: SortOldestFirst, Limit: 2})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Inception", rows[0].Title)
	})

	t.Run("kind filter", func(t *testing.T) {
		rows, err := s.List(FilterOptions{Kind: "subitem"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestLastEmpty(t *testing.T) {
	s, _ := newService(t)
	last, err := s.Last()
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestCleanup(t *testing.T) {
	s, clock := newService(t)
	require.NoError(t, s.Record(moviePlay("1", "Old")))
	*clock = clock.Add(48 * time.Hour)
	require.NoError(t, s.Record(moviePlay("2", "New")))

	removed, err := s.Cleanup(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	rows, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "New", rows[0].Title)
}

func TestNilDB(t *testing.T) {
	s := NewService(nil, "")
	assert.Error(t, s.Record(moviePlay("1", "x")))
	_, err := s.Recent(1)
	assert.Error(t, err)
}
