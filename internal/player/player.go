// Package player owns the single playback sink and the subtitle tracks
// attached to it.
package player

import (
	"context"
	"fmt"

	"github.com/justchokingaround/reel/internal/catalog"
)

// Sink is a playback engine. It accepts one source with its subtitle tracks
// at a time; Load replaces whatever was loaded before.
type Sink interface {
	Load(ctx context.Context, media Media) error
	// Clear stops the source and detaches every track. Safe to call when idle.
	Clear(ctx context.Context) error
}

// Track is one subtitle attachment
type Track struct {
	URL          string
	Language     string
	LanguageCode string
	Default      bool
}

// Media is what a sink plays
type Media struct {
	URL    string
	Title  string
	Tracks []Track
}

// Request asks for an item to be played. Collection is set for sub-items.
type Request struct {
	Item       catalog.Item
	Collection *catalog.Collection
}

// Title is the media title shown by the sink
func (r Request) Title() string {
	if r.Item.Kind == catalog.KindSubItem && r.Item.SubItem != nil && r.Collection != nil {
		return fmt.Sprintf("%s - %s - %s", r.Collection.Title, r.Item.SubItem.Label(), r.Item.Title())
	}
	return r.Item.Title()
}

// NowPlaying describes the loaded item
type NowPlaying struct {
	Kind       catalog.Kind
	Item       catalog.Item
	Collection *catalog.Collection
	Source     string
	Tracks     []Track
}

// PlaybackError is reported when an item could not be started
type PlaybackError struct {
	Title string
	Err   error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("failed to play %s: %v", e.Title, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// PlaybackStartedMsg is emitted after a sink accepted a source
type PlaybackStartedMsg struct {
	NowPlaying NowPlaying
}

// PlaybackFailedMsg is emitted when resolving or loading failed
type PlaybackFailedMsg struct {
	Err *PlaybackError
}

// NopSink accepts everything and plays nothing
type NopSink struct{}

func (NopSink) Load(context.Context, Media) error { return nil }
func (NopSink) Clear(context.Context) error       { return nil }
