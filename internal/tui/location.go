package tui

import (
	"log/slog"

	"github.com/justchokingaround/reel/internal/database"
	"github.com/justchokingaround/reel/internal/nav"
)

// StartLocation picks the location to open: an explicit one from the command
// line wins, then the last saved location, then the default
func StartLocation(store *database.SettingsStore, explicit *nav.Location, logger *slog.Logger) nav.Location {
	if explicit != nil {
		return *explicit
	}
	if store == nil {
		return nav.DefaultLocation
	}
	if logger == nil {
		logger = slog.Default()
	}

	raw, ok, err := store.Get(LocationKey)
	if err != nil {
		logger.Warn("failed to read saved location", "error", err)
		return nav.DefaultLocation
	}
	if !ok {
		return nav.DefaultLocation
	}
	loc, err := nav.ParseLocation(raw)
	if err != nil {
		logger.Warn("discarding saved location", "location", raw, "error", err)
		if err := store.Delete(LocationKey); err != nil {
			logger.Warn("failed to delete saved location", "error", err)
		}
		return nav.DefaultLocation
	}
	return loc
}
