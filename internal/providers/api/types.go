package api

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/justchokingaround/reel/internal/catalog"
)

// ID accepts both JSON strings and JSON numbers. Catalog servers disagree on
// which one they send.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MovieDTO is a movie as sent over the wire
type MovieDTO struct {
	ID        ID                 `json:"id"`
	Title     string             `json:"title"`
	Year      string             `json:"year,omitempty"`
	Length    string             `json:"length,omitempty"`
	Subtitles []catalog.Subtitle `json:"subtitles"`
}

// MovieList is the body of /api/movies/ and /api/movies/search
type MovieList struct {
	Movies []MovieDTO `json:"movies"`
	Total  int        `json:"total"`
}

// EpisodeDTO is an episode as sent over the wire
type EpisodeDTO struct {
	ID        ID                 `json:"id"`
	Season    int                `json:"season"`
	Episode   int                `json:"episode"`
	Title     string             `json:"title,omitempty"`
	Subtitles []catalog.Subtitle `json:"subtitles"`
}

// SeasonDTO is one season of a series
type SeasonDTO struct {
	SeasonNumber int          `json:"season_number"`
	Episodes     []EpisodeDTO `json:"episodes"`
}

// SeriesDTO is a series as sent over the wire
type SeriesDTO struct {
	ID            ID          `json:"id"`
	Title         string      `json:"title"`
	Year          string      `json:"year,omitempty"`
	TotalEpisodes int         `json:"total_episodes"`
	Seasons       []SeasonDTO `json:"seasons"`
}

// SeriesList is the body of /api/series/ and /api/series/search
type SeriesList struct {
	Series []SeriesDTO `json:"series"`
	Total  int         `json:"total"`
}

// Standalone converts the DTO into a catalog movie
func (m MovieDTO) Standalone() *catalog.Standalone {
	return &catalog.Standalone{
		ID:        string(m.ID),
		Title:     m.Title,
		Year:      m.Year,
		Length:    m.Length,
		Subtitles: m.Subtitles,
	}
}

// Collection converts the DTO into a catalog series. Episodes that omit their
// season number inherit the one of the enclosing season.
func (s SeriesDTO) Collection() *catalog.Collection {
	c := &catalog.Collection{
		ID:            string(s.ID),
		Title:         s.Title,
		YearRange:     s.Year,
		TotalEpisodes: s.TotalEpisodes,
		Seasons:       make([]catalog.Season, 0, len(s.Seasons)),
	}
	for _, sd := range s.Seasons {
		season := catalog.Season{Number: sd.SeasonNumber}
		for _, ed := range sd.Episodes {
			number := ed.Season
			if number == 0 {
				number = sd.SeasonNumber
			}
			season.Episodes = append(season.Episodes, catalog.SubItem{
				ID:        string(ed.ID),
				Season:    number,
				Episode:   ed.Episode,
				Title:     ed.Title,
				Subtitles: ed.Subtitles,
			})
		}
		c.Seasons = append(c.Seasons, season)
	}
	if c.TotalEpisodes == 0 {
		c.TotalEpisodes = c.EpisodeCount()
	}
	return c
}

// Page converts the list into a catalog page
func (l MovieList) Page() catalog.Page {
	items := make([]catalog.Item, 0, len(l.Movies))
	for _, m := range l.Movies {
		items = append(items, catalog.FromStandalone(m.Standalone()))
	}
	return catalog.Page{Items: items, Total: l.Total}
}

// Page converts the list into a catalog page
func (l SeriesList) Page() catalog.Page {
	items := make([]catalog.Item, 0, len(l.Series))
	for _, s := range l.Series {
		items = append(items, catalog.FromCollection(s.Collection()))
	}
	return catalog.Page{Items: items, Total: l.Total}
}

// MovieFrom converts a catalog movie into its wire form
func MovieFrom(m *catalog.Standalone) MovieDTO {
	return MovieDTO{
		ID:        ID(m.ID),
		Title:     m.Title,
		Year:      m.Year,
		Length:    m.Length,
		Subtitles: nonNil(m.Subtitles),
	}
}

// SeriesFrom converts a catalog series into its wire form
func SeriesFrom(c *catalog.Collection) SeriesDTO {
	dto := SeriesDTO{
		ID:            ID(c.ID),
		Title:         c.Title,
		Year:          c.YearRange,
		TotalEpisodes: c.TotalEpisodes,
		Seasons:       make([]SeasonDTO, 0, len(c.Seasons)),
	}
	for _, s := range c.Seasons {
		sd := SeasonDTO{SeasonNumber: s.Number, Episodes: make([]EpisodeDTO, 0, len(s.Episodes))}
		for _, e := range s.Episodes {
			sd.Episodes = append(sd.Episodes, EpisodeDTO{
				ID:        ID(e.ID),
				Season:    e.Season,
				Episode:   e.Episode,
				Title:     e.Title,
				Subtitles: nonNil(e.Subtitles),
			})
		}
		dto.Seasons = append(dto.Seasons, sd)
	}
	return dto
}

// MovieListFrom builds a movie list body from a page of standalone items
func MovieListFrom(page catalog.Page) MovieList {
	out := MovieList{Movies: make([]MovieDTO, 0, len(page.Items)), Total: page.Total}
	for _, it := range page.Items {
		if it.Standalone != nil {
			out.Movies = append(out.Movies, MovieFrom(it.Standalone))
		}
	}
	return out
}

// SeriesListFrom builds a series list body from a page of collections
func SeriesListFrom(page catalog.Page) SeriesList {
	out := SeriesList{Series: make([]SeriesDTO, 0, len(page.Items)), Total: page.Total}
	for _, it := range page.Items {
		if it.Collection != nil {
			out.Series = append(out.Series, SeriesFrom(it.Collection))
		}
	}
	return out
}

// KindSegment names a catalog kind in subtitle URLs
func KindSegment(kind catalog.Kind) string {
	if kind == catalog.KindSubItem {
		return "episode"
	}
	return "movie"
}

func nonNil(subs []catalog.Subtitle) []catalog.Subtitle {
	if subs == nil {
		return []catalog.Subtitle{}
	}
	return subs
}

