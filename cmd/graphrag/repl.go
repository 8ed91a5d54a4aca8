package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Ask questions interactively",
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

		title := color.New(color.FgCyan, color.Bold)
		prompt := color.New(color.FgGreen, color.Bold)
		answer := color.New(color.FgWhite)
		errText := color.New(color.FgRed)

		title.Println("Book catalog assistant. Ask a question, or type 'exit' to quit.")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			prompt.Print("you> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				break
			}

			response, err := librarian.HandleQuery(cmd.Context(), line)
			if err != nil {
				errText.Printf("error: %v\n", err)
				continue
			}
			answer.Println(response)
			fmt.Println()
		}
		return scanner.Err()
	},
}
