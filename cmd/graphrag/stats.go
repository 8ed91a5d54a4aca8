package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog node counts",
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

		stats, err := cat.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Books:   %d\nAuthors: %d\nGenres:  %d\n",
			stats.Books, stats.Authors, stats.Genres)
		return nil
	},
}
