package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Create the vector indices if they do not exist",
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

		if err := cat.EnsureIndexes(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Vector indices are in place.")
		return nil
	},
}
