package mock

import (
	"strconv"

	"github.com/justchokingaround/reel/internal/catalog"
)

func movie(id int, title, year, length string, subs ...catalog.Subtitle) *catalog.Standalone {
	return &catalog.Standalone{ID: strconv.Itoa(id), Title: title, Year: year, Length: length, Subtitles: subs}
}

func english(filename string) catalog.Subtitle {
	return catalog.Subtitle{Language: "English", LanguageCode: "en", Filename: filename}
}

func demoMovies() []*catalog.Standalone {
	return []*catalog.Standalone{
		movie(1, "The Matrix", "1999", "2h 16m", english("matrix_en.srt")),
		movie(2, "The Matrix Reloaded", "2003", "2h 18m"),
		movie(3, "The Matrix Revolutions", "2003", "2h 9m"),
		movie(4, "Inception", "2010", "2h 28m"),
		movie(5, "Interstellar", "2014", "2h 49m", english("inter_en.srt")),
		movie(6, "The Dark Knight", "2008", "2h 32m"),
		movie(7, "The Dark Knight Rises", "2012", "2h 44m"),
		movie(8, "Batman Begins", "2005", "2h 20m"),
		movie(9, "Pulp Fiction", "1994", "2h 34m"),
		movie(10, "Reservoir Dogs", "1992", "1h 39m"),
		movie(11, "Kill Bill: Vol. 1", "2003", "1h 51m"),
		movie(12, "Kill Bill: Vol. 2", "2004", "2h 17m"),
		movie(13, "Fight Club", "1999", "2h 19m"),
		movie(14, "Se7en", "1995", "2h 7m"),
		movie(15, "Gone Girl", "2014", "2h 29m"),
		movie(16, "Forrest Gump", "1994", "2h 22m"),
		movie(17, "The Shawshank Redemption", "1994", "2h 22m"),
		movie(18, "The Green Mile", "1999", "3h 9m"),
		movie(19, "Goodfellas", "1990", "2h 26m"),
		movie(20, "Casino", "1995", "2h 58m"),
		movie(21, "The Irishman", "2019", "3h 29m"),
		movie(22, "The Godfather", "1972", "2h 55m"),
		movie(23, "The Godfather Part II", "1974", "3h 22m"),
		movie(24, "The Godfather Part III", "1990", "2h 42m"),
		movie(25, "Blade Runner", "1982", "1h 57m"),
		movie(26, "Blade Runner 2049", "2017", "2h 44m"),
		movie(27, "Mad Max: Fury Road", "2015", "2h 0m"),
		movie(28, "Dune", "2021", "2h 35m"),
		movie(29, "Arrival", "2016", "1h 56m"),
		movie(30, "Parasite", "2019", "2h 12m", english("parasite_en.srt")),
	}
}

// seasons builds len(counts) seasons; id(season, episode) numbers each
// episode, both arguments starting at 1
func seasons(counts []int, id func(season, episode int) int) []catalog.Season {
	out := make([]catalog.Season, 0, len(counts))
	for si, n := range counts {
		season := catalog.Season{Number: si + 1}
		for e := 1; e <= n; e++ {
			season.Episodes = append(season.Episodes, catalog.SubItem{
				ID:      strconv.Itoa(id(si+1, e)),
				Season:  si + 1,
				Episode: e,
				Title:   "Episode " + strconv.Itoa(e),
			})
		}
		out = append(out, season)
	}
	return out
}

func demoSeries() []*catalog.Collection {
	return []*catalog.Collection{
		{
			ID: "1", Title: "Breaking Bad", YearRange: "2008-2013", TotalEpisodes: 62,
			Seasons: seasons([]int{7, 13, 13, 13, 16}, func(s, e int) int { return s*100 + e }),
		},
		{
			ID: "2", Title: "Game of Thrones", YearRange: "2011-2019", TotalEpisodes: 73,
			Seasons: seasons([]int{10, 10, 10, 10, 10, 10, 7, 6}, func(s, e int) int { return s*1000 + e }),
		},
		{
			ID: "3", Title: "The Wire", YearRange: "2002-2008", TotalEpisodes: 60,
			Seasons: seasons([]int{12, 12, 12, 12, 12}, func(s, e int) int { return s*2000 + e }),
		},
		{
			ID: "4", Title: "The Sopranos", YearRange: "1999-2007", TotalEpisodes: 86,
			Seasons: seasons([]int{13, 13, 13, 13, 13, 21}, func(s, e int) int { return s*3000 + e }),
		},
		{
			ID: "5", Title: "Stranger Things", YearRange: "2016-", TotalEpisodes: 42,
			Seasons: seasons([]int{8, 9, 8, 9}, func(s, e int) int { return 4000 + s*100 + e - 1 }),
		},
		{
			ID: "6", Title: "Chernobyl", YearRange: "2019", TotalEpisodes: 5,
			Seasons: seasons([]int{5}, func(s, e int) int { return 6000 + e }),
		},
	}
}
