package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/justchokingaround/reel/internal/database"
	"github.com/justchokingaround/reel/internal/history"
)

var (
	historyLimit      int
	historySearch     string
	historyCollection string
	historySort       string
	historyClear      time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played movies and episodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := history.NewService(database.DB, cfg.Provider.Backend)

		if historyClear > 0 {
			n, err := svc.Cleanup(historyClear)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %s entries\n", humanize.Comma(n))
			return nil
		}

		filter, err := historyFilter()
		if err != nil {
			return err
		}
		rows, err := svc.List(filter)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("Nothing played yet")
			return nil
		}

		for _, row := range rows {
			fmt.Printf("%-40s %s\n", historyTitle(row), humanize.Time(row.PlayedAt))
		}
		return nil
	},
}

// historyFilter builds the list filter from the command flags
func historyFilter() (history.FilterOptions, error) {
	filter := history.FilterOptions{
		CollectionID: historyCollection,
		SearchQuery:  historySearch,
		Limit:        historyLimit,
	}
	switch historySort {
	case "", "recent":
		filter.SortBy = history.SortRecentFirst
	case "oldest":
		filter.SortBy = history.SortOldestFirst
	case "title":
		filter.SortBy = history.SortTitleAsc
	default:
		return filter, fmt.Errorf("invalid --sort %q: want recent, oldest or title", historySort)
	}
	return filter, nil
}

func historyTitle(row database.PlaybackHistory) string {
	if row.CollectionTitle == "" {
		return row.Title
	}
	return fmt.Sprintf("%s S%02dE%02d %s", row.CollectionTitle, row.Season, row.Episode, row.Title)
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	historyCmd.Flags().StringVarP(&historySearch, "search", "s", "", "only show entries whose title matches")
	historyCmd.Flags().StringVar(&historyCollection, "collection", "", "only show episodes of this series id")
	historyCmd.Flags().StringVar(&historySort, "sort", "recent", "order: recent, oldest or title")
	historyCmd.Flags().DurationVar(&historyClear, "clear-older-than", 0, "delete entries older than this age instead of listing")

	rootCmd.AddCommand(historyCmd)
}
