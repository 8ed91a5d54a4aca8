package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Generate embeddings for nodes that lack one",
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

		result, err := cat.PopulateEmbeddings(cmd.Context())
		if err != nil {
			return err
		}

		if result.Total() == 0 {
			fmt.Println("All nodes already have embeddings.")
			return nil
		}
		fmt.Printf("Embedded %d nodes (%d books, %d authors, %d genres).\n",
			result.Total(), result.Books, result.Authors, result.Genres)
		return nil
	},
}
