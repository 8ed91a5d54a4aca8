package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteDefault(configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", configPath)
		return nil
	},
}
