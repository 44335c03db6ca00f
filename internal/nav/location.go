package nav

import (
	"fmt"
	"net/url"
	"strings"
)

// View is the value of the view location parameter
type View string

const (
	ViewMovies View = "movies"
	ViewSeries View = "series"
)

// Location is the persisted part of the navigation state
type Location struct {
	View   View
	Search string
}

// DefaultLocation opens the movie catalog with no filter
var DefaultLocation = Location{View: ViewMovies}

// ParseLocation reads a location from a query string ("?view=series&search=dark"),
// with or without the leading "?", or from a full URL. An unknown view falls
// back to movies.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return DefaultLocation, fmt.Errorf("invalid location %q: %w", raw, err)
	}
	return Location{
		View:   ParseView(values.Get("view")),
		Search: values.Get("search"),
	}, nil
}

// ParseView maps a view parameter to a View, defaulting to movies
func ParseView(s string) View {
	if strings.EqualFold(strings.TrimSpace(s), string(ViewSeries)) {
		return ViewSeries
	}
	return ViewMovies
}

// String encodes the location as a query string. The search parameter is
// omitted when empty.
func (l Location) String() string {
	values := url.Values{}
	values.Set("view", string(ParseView(string(l.View))))
	if l.Search != "" {
		values.Set("search", l.Search)
	}
	return "?" + values.Encode()
}

// Region is the home region the location opens
func (l Location) Region() Region {
	if ParseView(string(l.View)) == ViewSeries {
		return RegionCollections
	}
	return RegionMovies
}

// ViewOf returns the view parameter for a home region
func ViewOf(r Region) View {
	if r == RegionCollections {
		return ViewSeries
	}
	return ViewMovies
}
