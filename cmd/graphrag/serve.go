package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		cat, cleanup, err := buildCatalog(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		librarian, err := buildLibrarian(cfg, cat, logger)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Address:         cfg.Server.Address,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}, librarian, cat, logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
			// SIGINT/SIGTERM: drain in-flight requests before exiting.
			return srv.Shutdown(context.Background())
		}
	},
}
