package player

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/browser"
)

// BrowserSink hands the source URL to the system browser. A browser tab
// cannot take external subtitle tracks, so they are only logged.
type BrowserSink struct {
	open   func(url string) error
	logger *slog.Logger
}

func NewBrowserSink(logger *slog.Logger) *BrowserSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserSink{open: browser.OpenURL, logger: logger}
}

func (s *BrowserSink) Load(ctx context.Context, media Media) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, t := range media.Tracks {
		s.logger.Debug("browser sink ignores subtitle", "language", t.LanguageCode, "url", t.URL)
	}
	if err := s.open(media.URL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// Clear is a no-op; the opened tab belongs to the browser
func (s *BrowserSink) Clear(context.Context) error { return nil }

// OpenURL opens url in the system browser
func OpenURL(url string) error {
	return browser.OpenURL(url)
}
