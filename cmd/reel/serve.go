package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/justchokingaround/reel/internal/metrics"
	"github.com/justchokingaround/reel/internal/providers"
	"github.com/justchokingaround/reel/internal/server"
)

var (
	serveListen   string
	serveProvider string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a catalog over HTTP",
	Long: `Serve exposes a catalog backend over the same HTTP API the http provider
consumes. With the library backend, media files are streamed with range
support; other backends answer stream requests with a redirect.`,
	Example: `  reel serve --provider library
  reel serve --listen :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveProvider != "" {
			cfg.Provider.Backend = serveProvider
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		addr := cfg.Server.Listen
		if serveListen != "" {
			addr = serveListen
		}

		provider, err := providers.FromConfig(&cfg.Provider, logger)
		if err != nil {
			return fmt.Errorf("failed to create provider: %w", err)
		}

		srv := server.New(server.Options{
			Provider:    provider,
			Metrics:     metrics.New(),
			Logger:      logger,
			CORSOrigins: cfg.Server.CORSOrigins,
			RateLimit:   cfg.Server.RateLimit,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Serving %s catalog on %s\n", provider.Name(), addr)
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (default from server.listen)")
	serveCmd.Flags().StringVarP(&serveProvider, "provider", "p", "", "catalog backend to serve (http, mock or library)")

	rootCmd.AddCommand(serveCmd)
}
