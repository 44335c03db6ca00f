// Package nav is the navigation and focus state machine behind the browser.
//
// A Controller owns which of four mutually exclusive regions is visible, routes
// the shared search query to the active catalog, keeps a focus cursor per
// region and hands playable selections to the player. Every asynchronous load
// is a tea.Cmd whose result message carries the token it was issued with, so a
// response that arrives after a newer load is dropped instead of applied.
package nav

import "fmt"

// Region is one of the four display areas
type Region int

const (
	RegionMovies Region = iota
	RegionCollections
	RegionSubItems
	RegionPlayer
)

func (r Region) String() string {
	switch r {
	case RegionMovies:
		return "movies"
	case RegionCollections:
		return "collections"
	case RegionSubItems:
		return "subitems"
	case RegionPlayer:
		return "player"
	default:
		return fmt.Sprintf("region(%d)", int(r))
	}
}

// Home reports whether r is one of the two top-level catalogs
func (r Region) Home() bool {
	return r == RegionMovies || r == RegionCollections
}

// Status is the load state of a list
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusEmpty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Direction is a focus movement
type Direction int

const (
	Up Direction = iota
	Down
)
