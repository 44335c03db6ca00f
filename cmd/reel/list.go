package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/providers"
)

var listProvider string

var listCmd = &cobra.Command{
	Use:   "list <movies|series> [query]",
	Short: "Print a catalog without starting the browser",
	Example: `  reel list movies
  reel list series dark`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"movies", "series"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if listProvider != "" {
			cfg.Provider.Backend = listProvider
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		provider, err := providers.FromConfig(&cfg.Provider, logger)
		if err != nil {
			return fmt.Errorf("failed to create provider: %w", err)
		}

		query := ""
		if len(args) == 2 {
			query = strings.TrimSpace(args[1])
		}

		timeout := cfg.Provider.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		page, err := fetchPage(ctx, provider, args[0], query)
		if err != nil {
			return err
		}

		for _, item := range page.Items {
			fmt.Println(listLine(item))
		}
		fmt.Printf("\n%s of %s from %s\n", humanize.Comma(int64(len(page.Items))), humanize.Comma(int64(page.Total)), provider.Name())
		return nil
	},
}

func fetchPage(ctx context.Context, p providers.Provider, kind, query string) (catalog.Page, error) {
	switch kind {
	case "movies":
		if query != "" {
			return p.SearchStandalone(ctx, query)
		}
		return p.ListStandalone(ctx)
	case "series":
		if query != "" {
			return p.SearchCollections(ctx, query)
		}
		return p.ListCollections(ctx)
	}
	return catalog.Page{}, fmt.Errorf("unknown catalog %q: want movies or series", kind)
}

func listLine(item catalog.Item) string {
	switch item.Kind {
	case catalog.KindStandalone:
		if s := item.Standalone; s != nil && s.Year != "" {
			return fmt.Sprintf("%-12s %s (%s)", s.ID, s.Title, s.Year)
		}
	case catalog.KindCollection:
		if c := item.Collection; c != nil && c.YearRange != "" {
			return fmt.Sprintf("%-12s %s (%s)", c.ID, c.Title, c.YearRange)
		}
	}
	return fmt.Sprintf("%-12s %s", item.ID(), item.Title())
}

func init() {
	listCmd.Flags().StringVarP(&listProvider, "provider", "p", "", "catalog backend (http, mock or library)")

	rootCmd.AddCommand(listCmd)
}
