package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/reel/internal/catalog"
)

type fakeResolver struct {
	mu        sync.Mutex
	streamErr error
	delay     map[string]time.Duration
	subtitles map[string]string
}

func (f *fakeResolver) wait(ctx context.Context, id string) error {
	f.mu.Lock()
	d := f.delay[id]
	f.mu.Unlock()
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeResolver) StandaloneStreamURL(ctx context.Context, id string) (string, error) {
	if err := f.wait(ctx, id); err != nil {
		return "", err
	}
	if f.streamErr != nil {
		return "", f.streamErr
	}
	return "https://cdn/movie/" + id, nil
}

func (f *fakeResolver) SubItemStreamURL(ctx context.Context, id string) (string, error) {
	if err := f.wait(ctx, id); err != nil {
		return "", err
	}
	return "https://cdn/episode/" + id, nil
}

func (f *fakeResolver) SubtitleURL(ctx context.Context, kind catalog.Kind, itemID, filename string) (string, error) {
	if filename == "broken.srt" {
		return "", errors.New("lookup failed")
	}
	if u, ok := f.subtitles[filename]; ok {
		return u, nil
	}
	return "https://cdn/sub/" + kind.String() + "/" + itemID + "/" + filename, nil
}

// recordingSink mirrors what a real engine would hold
type recordingSink struct {
	mu      sync.Mutex
	source  string
	tracks  []Track
	loads   int
	clears  int
	loadErr error
}

func (s *recordingSink) Load(ctx context.Context, media Media) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}
	s.loads++
	s.source = media.URL
	s.tracks = append(s.tracks, media.Tracks...)
	return nil
}

func (s *recordingSink) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.source = ""
	s.tracks = nil
	return nil
}

func movie(id string, subs ...string) catalog.Item {
	m := &catalog.Standalone{ID: id, Title: "Movie " + id}
	for _, s := range subs {
		m.Subtitles = append(m.Subtitles, catalog.Subtitle{Language: s, LanguageCode: s, Filename: s + ".srt"})
	}
	return catalog.FromStandalone(m)
}

func TestPlayAttachesTracksInOrder(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(&fakeResolver{}, sink, nil, nil)

	msg := c.Play(Request{Item: movie("1", "en", "es", "fr")})()

	started, ok := msg.(PlaybackStartedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "https://cdn/movie/1", started.NowPlaying.Source)
	require.Len(t, sink.tracks, 3)
	assert.Equal(t, "en", sink.tracks[0].LanguageCode)
	assert.Equal(t, "es", sink.tracks[1].LanguageCode)
	assert.Equal(t, "fr", sink.tracks[2].LanguageCode)
	assert.True(t, sink.tracks[0].Default)
	assert.False(t, sink.tracks[1].Default)
	assert.False(t, sink.tracks[2].Default)
}

func TestPlaySkipsUnavailableTracks(t *testing.T) {
	sink := &recordingSink{}
	resolver := &fakeResolver{subtitles: map[string]string{"en.srt": ""}}
	c := NewController(resolver, sink, nil, nil)

	item := movie("1", "en", "es")
	item.Standalone.Subtitles = append(item.Standalone.Subtitles, catalog.Subtitle{LanguageCode: "de", Filename: "broken.srt"})

	msg := c.Play(Request{Item: item})()
	require.IsType(t, PlaybackStartedMsg{}, msg)

	require.Len(t, sink.tracks, 1)
	assert.Equal(t, "es", sink.tracks[0].LanguageCode)
	assert.True(t, sink.tracks[0].Default, "first attached track is the default")
}

func TestPlayReplacesPrevious(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(&fakeResolver{}, sink, nil, nil)

	require.IsType(t, PlaybackStartedMsg{}, c.Play(Request{Item: movie("A", "en", "es")})())
	require.IsType(t, PlaybackStartedMsg{}, c.Play(Request{Item: movie("B", "fr")})())

	assert.Equal(t, "https://cdn/movie/B", sink.source)
	require.Len(t, sink.tracks, 1)
	assert.Contains(t, sink.tracks[0].URL, "/B/fr.srt")
	assert.Equal(t, 2, sink.loads)

	np := c.NowPlaying()
	require.NotNil(t, np)
	assert.Equal(t, "B", np.Item.ID())
}

func TestSupersededPlayIsDropped(t *testing.T) {
	sink := &recordingSink{}
	resolver := &fakeResolver{delay: map[string]time.Duration{"A": 50 * time.Millisecond}}
	c := NewController(resolver, sink, nil, nil)

	slow := c.Play(Request{Item: movie("A", "en")})
	fast := c.Play(Request{Item: movie("B")})

	require.IsType(t, PlaybackStartedMsg{}, fast())
	assert.Nil(t, slow())

	assert.Equal(t, "https://cdn/movie/B", sink.source)
	assert.Empty(t, sink.tracks)
	assert.Equal(t, 1, sink.loads)
}

func TestStop(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(&fakeResolver{}, sink, nil, nil)

	t.Run("idempotent when idle", func(t *testing.T) {
		c.Stop()
		c.Stop()
		assert.Nil(t, c.NowPlaying())
		assert.Empty(t, sink.source)
	})

	t.Run("clears source and tracks", func(t *testing.T) {
		require.IsType(t, PlaybackStartedMsg{}, c.Play(Request{Item: movie("1", "en")})())
		c.Stop()
		assert.Nil(t, c.NowPlaying())
		assert.Empty(t, sink.source)
		assert.Empty(t, sink.tracks)
	})

	t.Run("invalidates plays in flight", func(t *testing.T) {
		cmd := c.Play(Request{Item: movie("2")})
		c.Stop()
		assert.Nil(t, cmd())
		assert.Empty(t, sink.source)
	})
}

// blockingSink holds Load until release is closed
type blockingSink struct {
	recordingSink
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSink) Load(ctx context.Context, media Media) error {
	close(s.entered)
	<-s.release
	return s.recordingSink.Load(ctx, media)
}

func TestSlowSinkDoesNotBlockState(t *testing.T) {
	sink := &blockingSink{entered: make(chan struct{}), release: make(chan struct{})}
	c := NewController(&fakeResolver{}, sink, nil, nil)

	result := make(chan any, 1)
	cmd := c.Play(Request{Item: movie("1", "en")})
	go func() { result <- cmd() }()

	select {
	case <-sink.entered:
	case <-time.After(time.Second):
		t.Fatal("sink was never loaded")
	}

	returned := make(chan struct{})
	go func() {
		_ = c.NowPlaying()
		c.Stop()
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("NowPlaying and Stop waited on the sink")
	}

	close(sink.release)
	select {
	case msg := <-result:
		assert.Nil(t, msg, "a play stopped while loading is dropped")
	case <-time.After(time.Second):
		t.Fatal("play never finished")
	}

	assert.Nil(t, c.NowPlaying())
	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Empty(t, sink.source, "the superseded load is cleared")
	assert.Empty(t, sink.tracks)
}

func TestPlayFailures(t *testing.T) {
	t.Run("stream resolution", func(t *testing.T) {
		c := NewController(&fakeResolver{streamErr: errors.New("503")}, &recordingSink{}, nil, nil)
		msg := c.Play(Request{Item: movie("1")})()

		failed, ok := msg.(PlaybackFailedMsg)
		require.True(t, ok)
		assert.Contains(t, failed.Err.Error(), "Movie 1")
		assert.Nil(t, c.NowPlaying())
	})

	t.Run("sink rejection", func(t *testing.T) {
		sinkErr := errors.New("unsupported codec")
		c := NewController(&fakeResolver{}, &recordingSink{loadErr: sinkErr}, nil, nil)
		msg := c.Play(Request{Item: movie("1")})()

		failed, ok := msg.(PlaybackFailedMsg)
		require.True(t, ok)
		assert.ErrorIs(t, failed.Err, sinkErr)
	})

	t.Run("collections are not playable", func(t *testing.T) {
		c := NewController(&fakeResolver{}, &recordingSink{}, nil, nil)
		msg := c.Play(Request{Item: catalog.FromCollection(&catalog.Collection{ID: "dark"})})()

		failed, ok := msg.(PlaybackFailedMsg)
		require.True(t, ok)
		assert.ErrorIs(t, failed.Err, ErrNotPlayable)
	})
}

func TestPlaySubItem(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(&fakeResolver{}, sink, nil, nil)
	dark := &catalog.Collection{ID: "dark", Title: "Dark"}
	ep := catalog.FromSubItem(&catalog.SubItem{ID: "s01e01", Season: 1, Episode: 1, Title: "Secrets"})

	msg := c.Play(Request{Item: ep, Collection: dark})()

	started, ok := msg.(PlaybackStartedMsg)
	require.True(t, ok)
	assert.Equal(t, catalog.KindSubItem, started.NowPlaying.Kind)
	assert.Same(t, dark, started.NowPlaying.Collection)
	assert.Equal(t, "https://cdn/episode/s01e01", sink.source)
	assert.Equal(t, "Dark - S01E01 - Secrets", Request{Item: ep, Collection: dark}.Title())
}

func TestBrowserSink(t *testing.T) {
	var opened []string
	s := NewBrowserSink(nil)
	s.open = func(url string) error {
		opened = append(opened, url)
		return nil
	}

	require.NoError(t, s.Load(context.Background(), Media{URL: "https://cdn/movie/1", Tracks: []Track{{URL: "x"}}}))
	assert.Equal(t, []string{"https://cdn/movie/1"}, opened)
	assert.NoError(t, s.Clear(context.Background()))
}
