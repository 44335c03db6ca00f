package nav

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/reel/internal/catalog"
)

func items(titles ...string) []catalog.Item {
	out := make([]catalog.Item, len(titles))
	for i, title := range titles {
		out[i] = catalog.FromStandalone(&catalog.Standalone{ID: fmt.Sprint(i + 1), Title: title})
	}
	return out
}

func staticFetcher(all ...string) Fetcher {
	return func(ctx context.Context, query string) (catalog.Page, error) {
		var page catalog.Page
		for _, it := range items(all...) {
			if query == "" || catalog.MatchTitle(it.Title(), query) {
				page.Items = append(page.Items, it)
			}
		}
		page.Total = len(page.Items)
		return page, nil
	}
}

type scrollRecorder struct {
	calls []int
}

func (s *scrollRecorder) scroll(_ Region, i int) {
	s.calls = append(s.calls, i)
}

func loaded(t *testing.T, l *List, query string) {
	t.Helper()
	msg, ok := l.Load(query)().(ListLoadedMsg)
	require.True(t, ok)
	require.True(t, l.Apply(msg))
}

func TestListLoad(t *testing.T) {
	l := NewList(RegionMovies, staticFetcher("The Dark Knight", "Inception", "Dark City"), nil, nil)
	assert.Equal(t, StatusIdle, l.Status())
	assert.Equal(t, -1, l.Focused())

	cmd := l.Load("")
	assert.Equal(t, StatusLoading, l.Status())
	assert.Empty(t, l.Items())

	require.True(t, l.Apply(cmd().(ListLoadedMsg)))
	assert.Equal(t, StatusLoaded, l.Status())
	assert.Len(t, l.Items(), 3)
	assert.Equal(t, 3, l.Total())
	assert.Equal(t, -1, l.Focused())

	loaded(t, l, "dark")
	assert.Len(t, l.Items(), 2)

	loaded(t, l, "zzz")
	assert.Equal(t, StatusEmpty, l.Status())
	assert.NoError(t, l.Err())
}

func TestListLoadResetsFocus(t *testing.T) {
	l := NewList(RegionMovies, staticFetcher("a", "b"), nil, nil)
	loaded(t, l, "")
	l.MoveFocus(Down)
	require.Equal(t, 0, l.Focused())

	l.Load("")
	assert.Equal(t, -1, l.Focused())
	assert.Empty(t, l.Items())
}

func TestListLoadFailure(t *testing.T) {
	boom := errors.New("connection refused")
	l := NewList(RegionCollections, func(context.Context, string) (catalog.Page, error) {
		return catalog.Page{}, boom
	}, nil, nil)

	require.True(t, l.Apply(l.Load("")().(ListLoadedMsg)))
	assert.Equal(t, StatusError, l.Status())
	assert.Empty(t, l.Items())

	var loadErr *LoadError
	require.ErrorAs(t, l.Err(), &loadErr)
	assert.Equal(t, RegionCollections, loadErr.Region)
	assert.ErrorIs(t, l.Err(), boom)
}

func TestListStaleResponse(t *testing.T) {
	var firstCtx context.Context
	l := NewList(RegionMovies, func(ctx context.Context, query string) (catalog.Page, error) {
		if query == "first" {
			firstCtx = ctx
		}
		return catalog.Page{Items: items(query), Total: 1}, nil
	}, nil, nil)

	first := l.Load("first")
	second := l.Load("second")

	// the newer response lands first
	require.True(t, l.Apply(second().(ListLoadedMsg)))
	late := first().(ListLoadedMsg)
	assert.False(t, l.Apply(late))

	require.Len(t, l.Items(), 1)
	assert.Equal(t, "second", l.Items()[0].Title())
	assert.Equal(t, StatusLoaded, l.Status())
	require.NotNil(t, firstCtx)
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
}

func TestListStaleAfterReplaceAndReset(t *testing.T) {
	l := NewList(RegionSubItems, staticFetcher("a"), nil, nil)

	pending := l.Load("")
	l.Replace(items("x", "y"))
	assert.False(t, l.Apply(pending().(ListLoadedMsg)))
	assert.Len(t, l.Items(), 2)

	pending = l.Load("")
	l.Reset()
	assert.False(t, l.Apply(pending().(ListLoadedMsg)))
	assert.Equal(t, StatusIdle, l.Status())
	assert.Empty(t, l.Items())
}

func TestListIgnoresOtherRegions(t *testing.T) {
	l := NewList(RegionMovies, staticFetcher("a"), nil, nil)
	msg := l.Load("")().(ListLoadedMsg)
	msg.Region = RegionCollections
	assert.False(t, l.Apply(msg))
}

func TestMoveFocus(t *testing.T) {
	rec := &scrollRecorder{}
	l := NewList(RegionMovies, staticFetcher("a", "b", "c"), rec.scroll, nil)

	t.Run("empty list", func(t *testing.T) {
		assert.False(t, l.MoveFocus(Down))
		assert.False(t, l.MoveFocus(Up))
		assert.Equal(t, -1, l.Focused())
		assert.Empty(t, rec.calls)
	})

	loaded(t, l, "")

	t.Run("up from nothing is ignored", func(t *testing.T) {
		assert.False(t, l.MoveFocus(Up))
		assert.Equal(t, -1, l.Focused())
	})

	t.Run("down from nothing lands on first", func(t *testing.T) {
		assert.True(t, l.MoveFocus(Down))
		assert.Equal(t, 0, l.Focused())
		assert.Equal(t, []int{0}, rec.calls)
	})

	t.Run("clamps at the end", func(t *testing.T) {
		for range 5 {
			l.MoveFocus(Down)
		}
		assert.Equal(t, 2, l.Focused())
		assert.Equal(t, []int{0, 1, 2}, rec.calls)
	})

	t.Run("clamps at the start", func(t *testing.T) {
		for range 5 {
			l.MoveFocus(Up)
		}
		assert.Equal(t, 0, l.Focused())
	})
}

func TestFocusBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n <= 5; n++ {
		titles := make([]string, n)
		for i := range titles {
			titles[i] = fmt.Sprint("t", i)
		}
		l := NewList(RegionMovies, staticFetcher(titles...), nil, nil)
		loaded(t, l, "")

		for range 200 {
			if rng.Intn(2) == 0 {
				l.MoveFocus(Up)
			} else {
				l.MoveFocus(Down)
			}
			require.GreaterOrEqual(t, l.Focused(), -1)
			require.LessOrEqual(t, l.Focused(), n-1)
			if n == 0 {
				require.Equal(t, -1, l.Focused())
			}
		}
	}
}

func TestSetFocus(t *testing.T) {
	l := NewList(RegionMovies, staticFetcher("a", "b", "c"), nil, nil)
	loaded(t, l, "")

	l.SetFocus(10)
	assert.Equal(t, 2, l.Focused())
	l.SetFocus(-7)
	assert.Equal(t, -1, l.Focused())
	l.SetFocus(1)
	assert.Equal(t, 1, l.Focused())
}

func TestSelect(t *testing.T) {
	l := NewList(RegionMovies, staticFetcher("a", "b", "c"), nil, nil)

	_, ok := l.SelectFocused()
	assert.False(t, ok)

	loaded(t, l, "")
	_, ok = l.SelectFocused()
	assert.False(t, ok, "nothing focused")

	l.MoveFocus(Down)
	item, ok := l.SelectFocused()
	require.True(t, ok)
	assert.Equal(t, "a", item.Title())

	item, ok = l.SelectByClick(2)
	require.True(t, ok)
	assert.Equal(t, "c", item.Title())
	assert.Equal(t, 0, l.Focused(), "click leaves the cursor alone")

	_, ok = l.SelectByClick(3)
	assert.False(t, ok)
}
